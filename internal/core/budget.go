package core

// BudgetState classifies spending against a monthly budget.
type BudgetState string

const (
	BudgetOK        BudgetState = "ok"
	BudgetNearLimit BudgetState = "near_limit"
	BudgetOver      BudgetState = "over"
)

// nearLimitPercent is the remaining share of the budget at or below which
// spending is reported as near the limit.
const nearLimitPercent = 20

// BudgetStatus compares what was spent in a partition with its budget.
type BudgetStatus struct {
	Budget      Money
	Spent       Money
	Remaining   Money // negative when over budget
	PercentUsed int
	State       BudgetState
}

// NewBudgetStatus computes remaining amount, percentage used and state.
func NewBudgetStatus(budget, spent Money) BudgetStatus {
	remaining := budget.Sub(spent)
	st := BudgetStatus{
		Budget:      budget,
		Spent:       spent,
		Remaining:   remaining,
		PercentUsed: PercentOf(spent, budget),
	}
	switch {
	case budget.Cents == 0 && spent.Cents == 0:
		st.State = BudgetOK
	case spent.Cents > budget.Cents:
		st.State = BudgetOver
	case remaining.Cents*100 <= budget.Cents*nearLimitPercent:
		st.State = BudgetNearLimit
	default:
		st.State = BudgetOK
	}
	return st
}

// Overspent returns how much spending exceeds the budget, or zero.
func (s BudgetStatus) Overspent() Money {
	if s.Remaining.Cents >= 0 {
		return Money{}
	}
	return Money{Cents: -s.Remaining.Cents}
}
