package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Quote итог выбора услуги
type Quote struct {
	Zones           []string
	DurationMinutes int
	Price           int
}

// Quoter считает длительность и цену выбора
type Quoter interface {
	Quote(ctx context.Context, category string, zones []string, groupChoices map[string]string, extras []string) (Quote, error)
}

// SlotFinder возвращает свободные времена начала на дату
type SlotFinder interface {
	Slots(ctx context.Context, date time.Time, category string, zones []string) ([]string, error)
}

// BookingRequest данные для создания записи
type BookingRequest struct {
	Category     string
	Zones        []string
	Date         time.Time
	StartTime    string
	ClientName   string
	ClientHandle string
	ClientEmail  string
	Notes        string
}

// Booker создаёт запись и возвращает её ID
type Booker interface {
	Book(ctx context.Context, req BookingRequest) (string, error)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Event событие мастера с данными шага
type Event struct {
	Type EventType

	Category     string
	Zones        []string
	GroupChoices map[string]string
	Extras       []string

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM

	ClientName   string
	ClientHandle string
	ClientEmail  string
	Notes        string
}

// View состояние сессии для отображения; Slots заполняется только на шаге выбора времени
type View struct {
	Session *Session
	Slots   []string
}

// Flow применяет события к сессиям с проверками и побочными эффектами
type Flow struct {
	store  *Store
	quoter Quoter
	slots  SlotFinder
	booker Booker
	clock  Clock
	logger Logger
}

// NewFlow создаёт мастер записи
func NewFlow(store *Store, quoter Quoter, slots SlotFinder, booker Booker, clock Clock, logger Logger) *Flow {
	return &Flow{
		store:  store,
		quoter: quoter,
		slots:  slots,
		booker: booker,
		clock:  clock,
		logger: logger,
	}
}

// Start открывает новую сессию
func (f *Flow) Start() *View {
	session := f.store.Create()
	f.logger.Info("BookingFlow: session=%s started", session.ID)
	return &View{Session: session}
}

// View возвращает сессию; на шаге выбора времени слоты пересчитываются при каждом чтении
func (f *Flow) View(ctx context.Context, id string) (*View, error) {
	session, err := f.store.Get(id)
	if err != nil {
		return nil, err
	}
	return f.view(ctx, session)
}

// Apply применяет событие к сессии.
// При ошибке проверки сессия остаётся на прежнем шаге.
// События одной сессии применяются строго по очереди.
func (f *Flow) Apply(ctx context.Context, id string, event Event) (*View, error) {
	unlock := f.store.Lock(id)
	defer unlock()

	session, err := f.store.Get(id)
	if err != nil {
		return nil, err
	}

	next, err := Next(session.State, event.Type)
	if err != nil {
		f.logger.Warn("BookingFlow: session=%s rejected event %s in state %s", id, event.Type, session.State)
		return nil, err
	}

	switch event.Type {
	case EventSelectService:
		err = f.selectService(ctx, session, event)
	case EventSelectDate:
		err = f.selectDate(session, event)
	case EventSelectTime:
		err = f.selectTime(ctx, session, event)
	case EventSubmitDetails:
		err = f.submitDetails(ctx, session, event)
	case EventBack:
		back(session)
	case EventRestart:
		session.reset()
	}

	if err != nil {
		if errors.Is(err, ErrSlotUnavailable) && session.State == StateClientDetails {
			// слот заняли, пока клиент заполнял данные: возвращаем к выбору времени
			session.StartTime = ""
			session.State = StatePickTime
			f.store.Save(session)
		}
		f.logger.Warn("BookingFlow: session=%s event %s failed: %v", id, event.Type, err)
		return nil, err
	}

	f.logger.Info("BookingFlow: session=%s %s -> %s", id, session.State, next)
	session.State = next
	f.store.Save(session)

	return f.view(ctx, session)
}

func (f *Flow) selectService(ctx context.Context, s *Session, e Event) error {
	category := strings.TrimSpace(e.Category)
	if category == "" {
		return fmt.Errorf("%w: category is required", ErrNoZonesSelected)
	}
	if len(e.Zones) == 0 && len(e.GroupChoices) == 0 && len(e.Extras) == 0 {
		return ErrNoZonesSelected
	}

	quote, err := f.quoter.Quote(ctx, category, e.Zones, e.GroupChoices, e.Extras)
	if err != nil {
		return err
	}
	if len(quote.Zones) == 0 || quote.DurationMinutes <= 0 {
		return ErrNoZonesSelected
	}

	s.Category = category
	s.Zones = quote.Zones
	s.DurationMinutes = quote.DurationMinutes
	s.Price = quote.Price
	return nil
}

func (f *Flow) selectDate(s *Session, e Event) error {
	date, err := time.ParseInLocation(domain.DateFormat, e.Date, time.Local)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, e.Date)
	}
	if date.Before(domain.DateOnly(f.clock.Now())) {
		return ErrDateInPast
	}

	s.Date = date
	s.StartTime = ""
	return nil
}

func (f *Flow) selectTime(ctx context.Context, s *Session, e Event) error {
	slots, err := f.slots.Slots(ctx, s.Date, s.Category, s.Zones)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot == e.StartTime {
			s.StartTime = slot
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSlotUnavailable, e.StartTime)
}

func (f *Flow) submitDetails(ctx context.Context, s *Session, e Event) error {
	name := strings.TrimSpace(e.ClientName)
	handle := strings.TrimSpace(e.ClientHandle)
	if name == "" || handle == "" {
		return ErrMissingDetails
	}

	id, err := f.booker.Book(ctx, BookingRequest{
		Category:     s.Category,
		Zones:        s.Zones,
		Date:         s.Date,
		StartTime:    s.StartTime,
		ClientName:   name,
		ClientHandle: handle,
		ClientEmail:  strings.TrimSpace(e.ClientEmail),
		Notes:        strings.TrimSpace(e.Notes),
	})
	if err != nil {
		return err
	}

	s.ClientName = name
	s.ClientHandle = handle
	s.ClientEmail = strings.TrimSpace(e.ClientEmail)
	s.Notes = strings.TrimSpace(e.Notes)
	s.AppointmentID = id

	f.logger.Info("BookingFlow: session=%s booked appointment id=%s", s.ID, id)
	return nil
}

func back(s *Session) {
	switch s.State {
	case StatePickDate:
		s.clearService()
	case StatePickTime:
		s.clearDate()
	case StateClientDetails:
		s.StartTime = ""
	}
}

func (f *Flow) view(ctx context.Context, s *Session) (*View, error) {
	v := &View{Session: s}
	if s.State != StatePickTime {
		return v, nil
	}

	slots, err := f.slots.Slots(ctx, s.Date, s.Category, s.Zones)
	if err != nil {
		return nil, err
	}
	v.Slots = slots
	return v, nil
}
