package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Ошибки валидации сущностей
var (
	// ErrInvalidEntity indicates that entity payload violates the table schema
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUnknownTable indicates that table is not synchronized
	ErrUnknownTable = errors.New("unknown table")
)

// EventStatus статус события
type EventStatus string

// Статусы события
const (
	EventStatusPolling   EventStatus = "polling"
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusCancelled EventStatus = "cancelled"
)

// ParticipantStatus статус участника события
type ParticipantStatus string

// Статусы участника
const (
	ParticipantStatusInvited  ParticipantStatus = "invited"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusDeclined ParticipantStatus = "declined"
)

// VoteChoice ответ участника по конкретному слоту
type VoteChoice string

// Варианты голоса
const (
	VoteYes   VoteChoice = "yes"
	VoteNo    VoteChoice = "no"
	VoteMaybe VoteChoice = "maybe"
)

// Entity общий контракт синхронизируемых сущностей.
type Entity interface {
	EntityID() string
	Validate() error
}

// TimeSlot представляет вариант даты/времени, за который голосуют участники.
type TimeSlot struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	ID       string    `json:"id"`
}

// Event представляет событие, для которого группа подбирает дату.
type Event struct {
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ID          string      `json:"id"`
	OwnerID     string      `json:"owner_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Status      EventStatus `json:"status,omitempty"`
	FinalSlotID string      `json:"final_slot_id,omitempty"`
	Slots       []TimeSlot  `json:"slots,omitempty"`
}

// EntityID возвращает идентификатор события
func (e *Event) EntityID() string { return e.ID }

// Validate проверяет инварианты события
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidEntity)
	}
	if e.Title == "" {
		return fmt.Errorf("%w: event title is required", ErrInvalidEntity)
	}
	switch e.Status {
	case "", EventStatusPolling, EventStatusScheduled, EventStatusCancelled:
	default:
		return fmt.Errorf("%w: unknown event status %q", ErrInvalidEntity, e.Status)
	}

	seen := make(map[string]bool, len(e.Slots))
	for _, slot := range e.Slots {
		if slot.ID == "" {
			return fmt.Errorf("%w: slot id is required", ErrInvalidEntity)
		}
		if seen[slot.ID] {
			return fmt.Errorf("%w: duplicate slot %s", ErrInvalidEntity, slot.ID)
		}
		seen[slot.ID] = true
		if !slot.EndsAt.After(slot.StartsAt) {
			return fmt.Errorf("%w: slot %s ends before it starts", ErrInvalidEntity, slot.ID)
		}
	}

	if e.FinalSlotID != "" && !seen[e.FinalSlotID] {
		return fmt.Errorf("%w: final slot %s is not one of the event slots", ErrInvalidEntity, e.FinalSlotID)
	}

	return nil
}

// HasSlot проверяет, что у события есть слот с указанным ID
func (e *Event) HasSlot(slotID string) bool {
	for _, slot := range e.Slots {
		if slot.ID == slotID {
			return true
		}
	}
	return false
}

// ContentEqual сравнивает пользовательские поля события (без служебных меток времени)
func (e *Event) ContentEqual(other *Event) bool {
	if e.ID != other.ID || e.OwnerID != other.OwnerID || e.Title != other.Title ||
		e.Description != other.Description || e.Location != other.Location ||
		e.Status != other.Status || e.FinalSlotID != other.FinalSlotID ||
		len(e.Slots) != len(other.Slots) {
		return false
	}
	for i := range e.Slots {
		a, b := e.Slots[i], other.Slots[i]
		if a.ID != b.ID || !a.StartsAt.Equal(b.StartsAt) || !a.EndsAt.Equal(b.EndsAt) {
			return false
		}
	}
	return true
}

// Participant представляет участника события.
type Participant struct {
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	UserID    string            `json:"user_id,omitempty"`
	Name      string            `json:"name"`
	Status    ParticipantStatus `json:"status,omitempty"`
}

// EntityID возвращает идентификатор участника
func (p *Participant) EntityID() string { return p.ID }

// Validate проверяет инварианты участника
func (p *Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: participant id is required", ErrInvalidEntity)
	}
	if p.EventID == "" {
		return fmt.Errorf("%w: participant event_id is required", ErrInvalidEntity)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: participant name is required", ErrInvalidEntity)
	}
	switch p.Status {
	case "", ParticipantStatusInvited, ParticipantStatusAccepted, ParticipantStatusDeclined:
	default:
		return fmt.Errorf("%w: unknown participant status %q", ErrInvalidEntity, p.Status)
	}
	return nil
}

// ContentEqual сравнивает пользовательские поля участника
func (p *Participant) ContentEqual(other *Participant) bool {
	return p.ID == other.ID && p.EventID == other.EventID && p.UserID == other.UserID &&
		p.Name == other.Name && p.Status == other.Status
}

// Vote представляет голос участника за слот события.
type Vote struct {
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	ParticipantID string     `json:"participant_id"`
	SlotID        string     `json:"slot_id"`
	Choice        VoteChoice `json:"choice"`
}

// EntityID возвращает идентификатор голоса
func (v *Vote) EntityID() string { return v.ID }

// Validate проверяет инварианты голоса
func (v *Vote) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: vote id is required", ErrInvalidEntity)
	}
	if v.EventID == "" || v.ParticipantID == "" || v.SlotID == "" {
		return fmt.Errorf("%w: vote must reference event, participant and slot", ErrInvalidEntity)
	}
	switch v.Choice {
	case VoteYes, VoteNo, VoteMaybe:
	default:
		return fmt.Errorf("%w: unknown vote choice %q", ErrInvalidEntity, v.Choice)
	}
	return nil
}

// ContentEqual сравнивает пользовательские поля голоса
func (v *Vote) ContentEqual(other *Vote) bool {
	return v.ID == other.ID && v.EventID == other.EventID && v.ParticipantID == other.ParticipantID &&
		v.SlotID == other.SlotID && v.Choice == other.Choice
}

// NewEntity возвращает пустую сущность для таблицы.
func NewEntity(table Table) (Entity, error) {
	switch table {
	case TableEvents:
		return &Event{}, nil
	case TableParticipants:
		return &Participant{}, nil
	case TableVotes:
		return &Vote{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

// DecodeEntity строго десериализует снимок сущности для таблицы
// (неизвестные поля запрещены) и проверяет ее инварианты.
func DecodeEntity(table Table, data []byte) (Entity, error) {
	entity, err := NewEntity(table)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(entity); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s payload: %v", ErrInvalidEntity, table, err)
	}

	if err := entity.Validate(); err != nil {
		return nil, err
	}

	return entity, nil
}
