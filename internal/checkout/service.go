package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/cart"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/order"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/payment"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrCartUnavailable = errors.New("cart has unavailable items")
	ErrAmountMismatch  = errors.New("paid amount does not match cart total")
	ErrVerifyDeclined  = errors.New("payment was not successful")
	ErrCancelled       = errors.New("checkout was cancelled")
)

// CartSource is the Cart Aggregator as the orchestrator sees it.
type CartSource interface {
	Summary(ctx context.Context, userID int64) (cart.Summary, error)
	Clear(ctx context.Context, userID int64) error
}

// Store persists checkout sessions and orders. Implemented by *Repo.
type Store interface {
	CreateSession(ctx context.Context, userID int64, reference string, amountMinor int64, currency string) (Session, error)
	SessionByReference(ctx context.Context, reference string) (Session, error)
	SetSessionStatus(ctx context.Context, reference string, st Status) error
	CreateOrder(ctx context.Context, userID int64, reference string, amountMinor int64, currency string, items []cart.Item) (order.Order, bool, error)
	OrderByReference(ctx context.Context, reference string) (order.Order, error)
}

// UserSource resolves the customer email the gateway wants.
type UserSource interface {
	ByID(ctx context.Context, id int64) (user.User, error)
}

type Service struct {
	carts       CartSource
	store       Store
	users       UserSource
	gateway     payment.Gateway
	log         *slog.Logger
	currency    string
	callbackURL string
}

func NewService(carts CartSource, store Store, users UserSource, gateway payment.Gateway, log *slog.Logger, currency, callbackURL string) *Service {
	return &Service{
		carts:       carts,
		store:       store,
		users:       users,
		gateway:     gateway,
		log:         log,
		currency:    currency,
		callbackURL: callbackURL,
	}
}

type InitiateResult struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AmountMinor      int64  `json:"amount_minor"`
	Currency         string `json:"currency"`
}

// Initiate starts a checkout attempt. The amount sent to the gateway is
// always the server-computed cart total; nothing client-supplied is
// trusted. An empty or partly unavailable cart is rejected before any
// gateway traffic.
func (s *Service) Initiate(ctx context.Context, userID int64) (InitiateResult, error) {
	sum, err := s.carts.Summary(ctx, userID)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("aggregate cart: %w", err)
	}
	if sum.Empty() {
		return InitiateResult{}, ErrEmptyCart
	}
	if len(sum.Unavailable) > 0 {
		return InitiateResult{}, ErrCartUnavailable
	}

	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("resolve customer: %w", err)
	}

	reference := uuid.NewString()
	if _, err := s.store.CreateSession(ctx, userID, reference, sum.TotalMinor, s.currency); err != nil {
		return InitiateResult{}, fmt.Errorf("create session: %w", err)
	}

	res, err := s.gateway.Initialize(ctx, payment.InitRequest{
		Email:       u.Email,
		AmountMinor: sum.TotalMinor,
		Currency:    s.currency,
		Reference:   reference,
		CallbackURL: s.callbackURL,
	})
	if err != nil {
		if stErr := s.store.SetSessionStatus(ctx, reference, StatusFailed); stErr != nil {
			s.log.Error("mark session failed", "reference", reference, "err", stErr)
		}
		return InitiateResult{}, err
	}

	if err := s.store.SetSessionStatus(ctx, reference, StatusAwaitingCallback); err != nil {
		s.log.Error("mark session awaiting callback", "reference", reference, "err", err)
	}

	s.log.Info("checkout initiated",
		"reference", reference, "user_id", userID, "amount_minor", sum.TotalMinor)

	return InitiateResult{
		Reference:        reference,
		AuthorizationURL: res.AuthorizationURL,
		AmountMinor:      sum.TotalMinor,
		Currency:         s.currency,
	}, nil
}

// Confirm handles the gateway redirect for a reference. It verifies
// server-to-server, compares amounts with zero tolerance, and settles
// the session. Safe to call any number of times for one reference: the
// first success creates the order, every later call returns the same
// order without side effects.
func (s *Service) Confirm(ctx context.Context, reference string) (order.Order, error) {
	sess, err := s.store.SessionByReference(ctx, reference)
	if err != nil {
		return order.Order{}, err
	}

	// Idempotent reload: the order row is the source of truth for
	// "already processed".
	if existing, err := s.store.OrderByReference(ctx, reference); err == nil {
		s.log.Info("reference already settled", "reference", reference, "order_id", existing.ID)
		return existing, nil
	} else if !errors.Is(err, ErrOrderNotFound) {
		return order.Order{}, err
	}

	if sess.Status.IsTerminal() {
		switch sess.Status {
		case StatusCancelled:
			return order.Order{}, ErrCancelled
		case StatusPaid:
			// paid session without an order row should be impossible
			s.log.Error("paid session has no order", "reference", reference)
			return order.Order{}, ErrOrderNotFound
		default:
			return order.Order{}, ErrVerifyDeclined
		}
	}

	if !sess.Status.CanTransitionTo(StatusVerifying) {
		return order.Order{}, fmt.Errorf("reference %s not verifiable from %s", reference, sess.Status)
	}
	if err := s.store.SetSessionStatus(ctx, reference, StatusVerifying); err != nil {
		return order.Order{}, err
	}

	// Re-derive the authoritative total. A cart edited mid-checkout no
	// longer matches what the gateway was asked to charge.
	sum, err := s.carts.Summary(ctx, sess.UserID)
	if err != nil {
		return order.Order{}, fmt.Errorf("aggregate cart: %w", err)
	}
	if sum.TotalMinor != sess.AmountMinor || len(sum.Unavailable) > 0 {
		s.fail(ctx, reference)
		s.log.Warn("cart changed during checkout",
			"reference", reference, "initiated_minor", sess.AmountMinor, "current_minor", sum.TotalMinor)
		return order.Order{}, ErrAmountMismatch
	}

	vr, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		if errors.Is(err, payment.ErrUnavailable) {
			// session stays VERIFYING; the user may reload and retry
			return order.Order{}, err
		}
		s.fail(ctx, reference)
		return order.Order{}, err
	}

	if vr.Status != payment.StatusSuccess {
		s.fail(ctx, reference)
		return order.Order{}, ErrVerifyDeclined
	}
	if vr.AmountMinor != sess.AmountMinor || vr.Currency != sess.Currency {
		s.fail(ctx, reference)
		s.log.Warn("gateway amount mismatch",
			"reference", reference,
			"expected_minor", sess.AmountMinor, "paid_minor", vr.AmountMinor,
			"expected_currency", sess.Currency, "paid_currency", vr.Currency)
		return order.Order{}, ErrAmountMismatch
	}

	o, created, err := s.store.CreateOrder(ctx, sess.UserID, reference, sess.AmountMinor, sess.Currency, sum.Items)
	if err != nil {
		return order.Order{}, fmt.Errorf("create order: %w", err)
	}
	if created {
		if err := s.carts.Clear(ctx, sess.UserID); err != nil {
			s.log.Error("clear cart after payment", "reference", reference, "err", err)
		}
	}
	if err := s.store.SetSessionStatus(ctx, reference, StatusPaid); err != nil {
		s.log.Error("mark session paid", "reference", reference, "err", err)
	}

	s.log.Info("checkout paid", "reference", reference, "order_id", o.ID, "amount_minor", o.AmountMinor)
	return o, nil
}

func (s *Service) fail(ctx context.Context, reference string) {
	if err := s.store.SetSessionStatus(ctx, reference, StatusFailed); err != nil {
		s.log.Error("mark session failed", "reference", reference, "err", err)
	}
}
