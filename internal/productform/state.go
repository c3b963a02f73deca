package productform

// LoadState — что из двух независимых загрузок (товар, категории) ещё не завершилось.
type LoadState int

const (
	BothPending LoadState = iota
	ProductPending
	CategoriesPending
	Ready
)

func (s LoadState) String() string {
	switch s {
	case BothPending:
		return "bothPending"
	case ProductPending:
		return "productPending"
	case CategoriesPending:
		return "categoriesPending"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// LoadEvent — завершение одной из загрузок.
type LoadEvent int

const (
	ProductLoaded LoadEvent = iota
	CategoriesLoaded
)

// Next — переход по событию. Повторное событие ничего не меняет.
func (s LoadState) Next(ev LoadEvent) LoadState {
	switch {
	case s == BothPending && ev == ProductLoaded:
		return CategoriesPending
	case s == BothPending && ev == CategoriesLoaded:
		return ProductPending
	case s == ProductPending && ev == ProductLoaded:
		return Ready
	case s == CategoriesPending && ev == CategoriesLoaded:
		return Ready
	default:
		return s
	}
}

// initialLoadState — в режиме создания товар грузить не нужно.
func initialLoadState(edit bool) LoadState {
	if edit {
		return BothPending
	}
	return CategoriesPending
}

// Phase — жизненный цикл формы: Loading -> Ready -> Submitting -> Success,
// при ошибке отправки возврат в Ready (ошибка доступна через Err).
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseSubmitting
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	default:
		return "unknown"
	}
}
