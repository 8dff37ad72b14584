package checkout

// State шаг оформления заказа
type State int

const (
	Idle State = iota
	Validating
	CreatingPaymentOrder
	AwaitingPaymentUI
	VerifyingPayment
	PersistingOrder
	Done
	// Failed оплата не подтверждена, повторять оформление нельзя
	Failed
)

var stateNames = map[State]string{
	Idle:                 "idle",
	Validating:           "validating",
	CreatingPaymentOrder: "creating_payment_order",
	AwaitingPaymentUI:    "awaiting_payment_ui",
	VerifyingPayment:     "verifying_payment",
	PersistingOrder:      "persisting_order",
	Done:                 "done",
	Failed:               "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal из этого состояния переходов нет
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Validating -> PersistingOrder и PersistingOrder -> Idle есть только у оплаты
// при получении: шлюза нет, и отказ сервера ничего не списал.
var transitions = map[State][]State{
	Idle:                 {Validating},
	Validating:           {Idle, CreatingPaymentOrder, PersistingOrder},
	CreatingPaymentOrder: {Idle, AwaitingPaymentUI},
	AwaitingPaymentUI:    {Idle, VerifyingPayment},
	VerifyingPayment:     {PersistingOrder, Failed},
	PersistingOrder:      {Done, Idle},
}

// CanTransition разрешён ли переход from -> to
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
