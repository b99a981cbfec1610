package booking

import "fmt"

// State шаг мастера записи
type State string

const (
	StatePickService   State = "pick_service"
	StatePickDate      State = "pick_date"
	StatePickTime      State = "pick_time"
	StateClientDetails State = "client_details"
	StateConfirm       State = "confirm"
)

// EventType тип события мастера
type EventType string

const (
	EventSelectService EventType = "select_service"
	EventSelectDate    EventType = "select_date"
	EventSelectTime    EventType = "select_time"
	EventSubmitDetails EventType = "submit_details"
	EventBack          EventType = "back"
	EventRestart       EventType = "restart"
)

var transitions = map[State]map[EventType]State{
	StatePickService: {
		EventSelectService: StatePickDate,
		EventRestart:       StatePickService,
	},
	StatePickDate: {
		EventSelectDate: StatePickTime,
		EventBack:       StatePickService,
		EventRestart:    StatePickService,
	},
	StatePickTime: {
		EventSelectTime: StateClientDetails,
		EventSelectDate: StatePickTime,
		EventBack:       StatePickDate,
		EventRestart:    StatePickService,
	},
	StateClientDetails: {
		EventSubmitDetails: StateConfirm,
		EventBack:          StatePickTime,
		EventRestart:       StatePickService,
	},
	StateConfirm: {
		EventRestart: StatePickService,
	},
}

// Next возвращает следующий шаг без побочных эффектов
func Next(state State, event EventType) (State, error) {
	next, ok := transitions[state][event]
	if !ok {
		return state, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, event, state)
	}
	return next, nil
}
