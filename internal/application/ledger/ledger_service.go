// Package ledger records credit and payment transactions against customer
// balances and serves a customer's transaction history.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neardukaan/backend/internal/domain/customer"
	"github.com/neardukaan/backend/internal/domain/ledger"
	"github.com/neardukaan/backend/internal/domain/shared"
	"github.com/neardukaan/backend/internal/infrastructure/logger"
	"github.com/neardukaan/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// ErrCustomerNotFound is returned for absent and foreign customers alike.
var ErrCustomerNotFound = shared.NewDomainError(shared.CodeNotFound, "Customer not found or unauthorized.")

// ErrUnsupportedKind is returned for unknown payment types when they are rejected.
var ErrUnsupportedKind = shared.NewValidationError("Unsupported payment type. Use 'credit' or 'payment'.")

// LedgerService applies transactions to customer balances.
type LedgerService struct {
	customers          customer.Repository
	transactions       ledger.Repository
	events             shared.EventPublisher
	metrics            *telemetry.LedgerMetrics
	rejectUnknownKinds bool
	now                func() time.Time
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithEventPublisher sets where TransactionRecorded events go.
func WithEventPublisher(p shared.EventPublisher) Option {
	return func(s *LedgerService) { s.events = p }
}

// WithMetrics sets the ledger instruments.
func WithMetrics(m *telemetry.LedgerMetrics) Option {
	return func(s *LedgerService) { s.metrics = m }
}

// WithRejectUnknownKinds makes kinds other than credit and payment a validation error.
func WithRejectUnknownKinds(reject bool) Option {
	return func(s *LedgerService) { s.rejectUnknownKinds = reject }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(customers customer.Repository, transactions ledger.Repository, opts ...Option) *LedgerService {
	s := &LedgerService{
		customers:    customers,
		transactions: transactions,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordTransaction atomically applies the balance delta for req to the
// customer and then appends the ledger entry.
//
// The balance update and the append are separate writes. If the append
// fails after the balance committed, the error is logged with enough detail
// to reconcile by hand and Internal is returned. Calls are not idempotent.
func (s *LedgerService) RecordTransaction(ctx context.Context, shopID string, req RecordTransactionRequest) (*RecordTransactionResult, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "record_transaction",
		telemetry.SpanAttrShopID, shopID,
		telemetry.SpanAttrCustomerID, req.CustomerID,
	)
	defer span.End()

	log := logger.L(ctx)

	if strings.TrimSpace(req.CustomerID) == "" {
		return nil, shared.NewValidationError("Missing customer ID or amount.")
	}
	customerID, err := customer.ParseID(req.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	requested := ledger.DefaultKind
	if req.Kind != nil {
		requested = ledger.Kind(*req.Kind)
	}

	now := s.now()
	tx, err := ledger.NewTransaction(shopID, customerID, requested, req.Amount, req.Items, req.Notes, now)
	if err != nil {
		return nil, err
	}
	kind := string(tx.Kind)
	amount := tx.Amount.InexactFloat64()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrKind, kind,
		telemetry.SpanAttrAmount, amount,
	)

	if !tx.Kind.IsKnown() {
		log.Warn("Transaction kind does not move balances",
			zap.String("kind", kind),
			zap.String("customer_id", customerID.String()),
			zap.Bool("rejected", s.rejectUnknownKinds),
		)
		if s.rejectUnknownKinds {
			s.metrics.Observe(ctx, kind, telemetry.OutcomeRejected, amount, time.Since(started))
			return nil, ErrUnsupportedKind
		}
	}

	var updated *customer.Customer
	telemetry.WithProfilingLabels(ctx, telemetry.LedgerLabels("record_transaction", "balance_update", kind), func(ctx context.Context) {
		updated, err = s.customers.UpdateBalance(ctx, customerID, func(c *customer.Customer) error {
			if err := shared.CheckOwnership(c, shopID); err != nil {
				return err
			}
			due, spent := tx.Kind.Deltas(tx.Amount)
			c.ApplyBalanceDelta(due, spent, now)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) || errors.Is(err, shared.ErrForbidden) {
			s.metrics.Observe(ctx, kind, telemetry.OutcomeRejected, amount, time.Since(started))
			return nil, ErrCustomerNotFound
		}
		telemetry.RecordError(span, err)
		log.Error("Failed to update customer balance",
			zap.String("customer_id", customerID.String()),
			zap.Error(err),
		)
		s.metrics.Observe(ctx, kind, telemetry.OutcomeFailed, amount, time.Since(started))
		return nil, fmt.Errorf("update balance: %w", err)
	}

	telemetry.WithProfilingLabels(ctx, telemetry.LedgerLabels("record_transaction", "ledger_append", kind), func(ctx context.Context) {
		err = s.transactions.Append(ctx, tx)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		log.Error("Balance updated but ledger entry was not stored",
			zap.String("customer_id", customerID.String()),
			zap.String("transaction_id", tx.ID.String()),
			zap.String("kind", kind),
			zap.String("amount", tx.Amount.String()),
			zap.String("due_balance", updated.DueBalance.String()),
			zap.String("total_spent", updated.TotalSpent.String()),
			zap.Error(err),
		)
		s.metrics.AppendFailed(ctx, kind)
		s.metrics.Observe(ctx, kind, telemetry.OutcomeFailed, amount, time.Since(started))
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	if s.events != nil {
		event := ledger.NewTransactionRecorded(tx, updated.DueBalance, updated.TotalSpent)
		if err := s.events.Publish(ctx, event); err != nil {
			log.Warn("Failed to publish transaction event",
				zap.String("transaction_id", tx.ID.String()),
				zap.Error(err),
			)
		}
	}

	telemetry.AddEvent(span, "transaction_recorded",
		"transaction_id", tx.ID.String(),
		"due_balance", updated.DueBalance.String(),
	)
	log.Info("Transaction recorded",
		zap.String("customer_id", customerID.String()),
		zap.String("transaction_id", tx.ID.String()),
		zap.String("kind", kind),
		zap.String("amount", tx.Amount.String()),
	)
	s.metrics.Observe(ctx, kind, telemetry.OutcomeRecorded, amount, time.Since(started))

	return &RecordTransactionResult{
		TransactionID: tx.ID,
		Kind:          tx.Kind,
		DueBalance:    updated.DueBalance,
		TotalSpent:    updated.TotalSpent,
	}, nil
}

// ListTransactions returns the shop's entries for a customer, newest first.
// History outlives the customer record, so a deleted customer still lists
// its entries. Unknown, foreign and malformed ids list nothing.
func (s *LedgerService) ListTransactions(ctx context.Context, shopID, rawCustomerID string) ([]TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "list_transactions",
		telemetry.SpanAttrShopID, shopID,
		telemetry.SpanAttrCustomerID, rawCustomerID,
	)
	defer span.End()

	customerID, err := customer.ParseID(rawCustomerID)
	if err != nil {
		return []TransactionResponse{}, nil
	}

	txs, err := s.transactions.ListForCustomer(ctx, shopID, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}
