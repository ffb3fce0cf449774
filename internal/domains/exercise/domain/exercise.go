package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	catalog "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/domain"
)

// Step enumerates the wizard screens.
type Step string

const (
	StepIntro      Step = "INTRO"
	StepComparison Step = "COMPARISON"
	StepOrderForm  Step = "ORDER_FORM"
	StepReview     Step = "REVIEW"
)

var (
	ErrInvalidStep     = errors.New("operation not allowed in the current step")
	ErrOrderIncomplete = errors.New("purchase order is not complete")
	ErrUnknownItem     = errors.New("item is not part of the selected offer")
)

// IncompleteOrderError lists what the draft still needs before finishing.
type IncompleteOrderError struct {
	Missing []string
}

func (e *IncompleteOrderError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrOrderIncomplete, strings.Join(e.Missing, ", "))
}

func (e *IncompleteOrderError) Unwrap() error { return ErrOrderIncomplete }

// Exercise is one student run through the wizard. Only the current step's
// operations are accepted; everything else fails with ErrInvalidStep.
type Exercise struct {
	ID        string
	Step      Step
	Offer     *catalog.Offer
	Order     *PurchaseOrder
	Review    *Review
	Preview   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExercise opens a session on the intro screen.
func NewExercise(id string, now time.Time) *Exercise {
	return &Exercise{ID: id, Step: StepIntro, CreatedAt: now, UpdatedAt: now}
}

// Start leaves the intro for the offer comparison.
func (e *Exercise) Start(now time.Time) error {
	if err := e.expect("start", StepIntro); err != nil {
		return err
	}
	e.Step = StepComparison
	e.touch(now)
	return nil
}

// SelectOffer records the chosen offer and seeds an empty draft from it.
func (e *Exercise) SelectOffer(offer catalog.Offer, buyer catalog.Buyer, orderNumber string, now time.Time) error {
	if err := e.expect("select offer", StepComparison); err != nil {
		return err
	}
	chosen := offer.Clone()
	e.Offer = &chosen
	e.Order = NewPurchaseOrder(orderNumber, now, buyer, chosen)
	e.Review = nil
	e.Step = StepOrderForm
	e.touch(now)
	return nil
}

// AddItem places an item of the chosen offer on the draft.
func (e *Exercise) AddItem(itemID string, now time.Time) error {
	if err := e.expect("add item", StepOrderForm); err != nil {
		return err
	}
	item, ok := e.Offer.ItemByID(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	e.Order.AddItem(item)
	e.touch(now)
	return nil
}

func (e *Exercise) RemoveItem(itemID string, now time.Time) error {
	if err := e.expect("remove item", StepOrderForm); err != nil {
		return err
	}
	e.Order.RemoveItem(itemID)
	e.touch(now)
	return nil
}

func (e *Exercise) UpdateQuantity(itemID string, quantity int, now time.Time) error {
	if err := e.expect("update quantity", StepOrderForm); err != nil {
		return err
	}
	e.Order.UpdateQuantity(itemID, quantity)
	e.touch(now)
	return nil
}

// SetCondition sets one condition field after checking it against the vocabularies.
func (e *Exercise) SetCondition(vocab catalog.Vocabularies, field catalog.ConditionField, value string, now time.Time) error {
	if err := e.expect("set condition", StepOrderForm); err != nil {
		return err
	}
	if err := vocab.Validate(field, value); err != nil {
		return err
	}
	e.Order.SetCondition(field, value)
	e.touch(now)
	return nil
}

func (e *Exercise) SetSignature(text string, now time.Time) error {
	if err := e.expect("sign", StepOrderForm); err != nil {
		return err
	}
	e.Order.SetSignature(text)
	e.touch(now)
	return nil
}

// CanFinish mirrors the enabled state of the finish action.
func (e *Exercise) CanFinish() bool {
	return e.Step == StepOrderForm && e.Order != nil && e.Order.IsValid()
}

// ReadyForReview checks that the draft may be submitted.
func (e *Exercise) ReadyForReview() error {
	if err := e.expect("finish", StepOrderForm); err != nil {
		return err
	}
	if missing := e.Order.Missing(); len(missing) > 0 {
		return &IncompleteOrderError{Missing: missing}
	}
	return nil
}

// CompleteReview moves to the review screen with the evaluated checklist.
func (e *Exercise) CompleteReview(review Review, now time.Time) error {
	if err := e.ReadyForReview(); err != nil {
		return err
	}
	e.Review = &review
	e.Preview = false
	e.Step = StepReview
	e.touch(now)
	return nil
}

// TogglePreview switches between the checklist and the printable document.
func (e *Exercise) TogglePreview(now time.Time) error {
	if err := e.expect("toggle preview", StepReview); err != nil {
		return err
	}
	e.Preview = !e.Preview
	e.touch(now)
	return nil
}

// Restart discards the offer, the draft and the review and goes back to the
// comparison with a blank draft that only keeps the buyer block.
func (e *Exercise) Restart(now time.Time) error {
	if err := e.expect("restart", StepReview); err != nil {
		return err
	}
	e.Order = &PurchaseOrder{Buyer: e.Order.Buyer, Items: []PurchaseOrderItem{}}
	e.Offer = nil
	e.Review = nil
	e.Preview = false
	e.Step = StepComparison
	e.touch(now)
	return nil
}

// Clone returns a deep copy of the exercise.
func (e *Exercise) Clone() *Exercise {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Offer != nil {
		offer := e.Offer.Clone()
		clone.Offer = &offer
	}
	clone.Order = e.Order.Clone()
	if e.Review != nil {
		review := *e.Review
		review.Criteria = append([]Criterion(nil), e.Review.Criteria...)
		clone.Review = &review
	}
	return &clone
}

func (e *Exercise) expect(operation string, step Step) error {
	if e.Step != step {
		return fmt.Errorf("%w: cannot %s during %s", ErrInvalidStep, operation, e.Step)
	}
	return nil
}

func (e *Exercise) touch(now time.Time) {
	e.UpdatedAt = now
}
