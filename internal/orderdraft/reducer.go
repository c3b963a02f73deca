package orderdraft

// Reduce — применяет действие к копии состояния. Входное состояние не изменяется.
// nil-действие возвращает копию без изменений.
func Reduce(s State, a Action) State {
	next := s.Clone()
	if a == nil {
		return next
	}
	return a.apply(next)
}

func (a SetStep) apply(s State) State {
	s.CurrentStep = a.Step
	return s
}

func (a SetFormData) apply(s State) State {
	s.FormData = s.FormData.Apply(a.Patch)
	return s
}

func (a SetErrors) apply(s State) State {
	s.Errors = make(map[string]string, len(a.Errors))
	for k, v := range a.Errors {
		s.Errors[k] = v
	}
	return s
}

// Ошибки получателя удаляются из map в обоих направлениях переключения,
// так же как в ClearOrderError: очищенная ошибка — это отсутствующий ключ.
func (ToggleSelfPickup) apply(s State) State {
	s.FormData.IsSelfPickup = !s.FormData.IsSelfPickup
	if s.FormData.IsSelfPickup {
		s.FormData.RecipientName = ""
		s.FormData.RecipientPhone = ""
	}
	delete(s.Errors, FieldRecipientName)
	delete(s.Errors, FieldRecipientPhone)
	return s
}

func (a ClearOrderError) apply(s State) State {
	delete(s.Errors, a.Field)
	return s
}

func (ResetOrder) apply(s State) State {
	s.FormData = InitialForm()
	s.Errors = map[string]string{}
	return s
}
