package orderdraft

// Шаги мастера оформления в фиксированном порядке; CurrentStep — индекс в этой последовательности.
const (
	StepContacts = iota
	StepRecipient
	StepAddress
	StepDateTime
	StepWishes
)

// StepNames — имена шагов по индексу.
var StepNames = [...]string{
	StepContacts:  "contacts",
	StepRecipient: "recipient",
	StepAddress:   "address",
	StepDateTime:  "datetime",
	StepWishes:    "wishes",
}

// LastStep — индекс последнего шага.
const LastStep = len(StepNames) - 1

// StepName — имя шага или "unknown" для индекса вне последовательности.
func StepName(step int) string {
	if step < 0 || step > LastStep {
		return "unknown"
	}
	return StepNames[step]
}
