package testutil

import (
	"context"
	"sync"

	"github.com/cassiomorais/recurrentpayments/internal/application/payment"
	domainErrors "github.com/cassiomorais/recurrentpayments/internal/domain/errors"
	"github.com/cassiomorais/recurrentpayments/internal/domain/recurrentpayment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebitCall records the arguments of a balance check or debit.
type DebitCall struct {
	ClientID int
	Value    decimal.Decimal
}

// --- Validator Mock ---

// MockValidator is a mock implementation of payment.Validator. By default every
// request is valid.
type MockValidator struct {
	mu    sync.Mutex
	calls int

	ValidateFunc func(req payment.DebitRequest) []*domainErrors.ValidationError
}

func NewMockValidator() *MockValidator {
	return &MockValidator{}
}

// NewRejectingValidator returns a validator reporting the given violations for every request.
func NewRejectingValidator(violations ...*domainErrors.ValidationError) *MockValidator {
	return &MockValidator{
		ValidateFunc: func(payment.DebitRequest) []*domainErrors.ValidationError { return violations },
	}
}

func (m *MockValidator) Validate(req payment.DebitRequest) []*domainErrors.ValidationError {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.ValidateFunc != nil {
		return m.ValidateFunc(req)
	}
	return nil
}

func (m *MockValidator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// --- Balance Checker Mock ---

// MockBalanceChecker is an in-memory payment.BalanceChecker. Clients without a
// balance are treated as having none.
type MockBalanceChecker struct {
	mu       sync.Mutex
	balances map[int]decimal.Decimal
	calls    []DebitCall

	HasSufficientBalanceFunc func(ctx context.Context, clientID int, value decimal.Decimal) (bool, error)
}

func NewMockBalanceChecker() *MockBalanceChecker {
	return &MockBalanceChecker{balances: make(map[int]decimal.Decimal)}
}

// SetBalance pre-populates the balance of a client.
func (m *MockBalanceChecker) SetBalance(clientID int, balance decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[clientID] = balance
}

func (m *MockBalanceChecker) HasSufficientBalance(ctx context.Context, clientID int, value decimal.Decimal) (bool, error) {
	m.mu.Lock()
	m.calls = append(m.calls, DebitCall{ClientID: clientID, Value: value})
	balance, ok := m.balances[clientID]
	m.mu.Unlock()

	if m.HasSufficientBalanceFunc != nil {
		return m.HasSufficientBalanceFunc(ctx, clientID, value)
	}
	return ok && balance.GreaterThanOrEqual(value), nil
}

func (m *MockBalanceChecker) Calls() []DebitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DebitCall(nil), m.calls...)
}

// --- Debit Executor Mock ---

// MockDebitExecutor is a mock implementation of payment.DebitExecutor. By default
// every debit succeeds with a fresh transaction id.
type MockDebitExecutor struct {
	mu           sync.Mutex
	calls        []DebitCall
	transactions []uuid.UUID

	SendDebitFunc func(ctx context.Context, clientID int, value decimal.Decimal) (uuid.UUID, error)
}

func NewMockDebitExecutor() *MockDebitExecutor {
	return &MockDebitExecutor{}
}

func (m *MockDebitExecutor) SendDebit(ctx context.Context, clientID int, value decimal.Decimal) (uuid.UUID, error) {
	m.mu.Lock()
	m.calls = append(m.calls, DebitCall{ClientID: clientID, Value: value})
	m.mu.Unlock()

	var (
		txID uuid.UUID
		err  error
	)
	if m.SendDebitFunc != nil {
		txID, err = m.SendDebitFunc(ctx, clientID, value)
	} else {
		txID = uuid.New()
	}
	if err == nil {
		m.mu.Lock()
		m.transactions = append(m.transactions, txID)
		m.mu.Unlock()
	}
	return txID, err
}

func (m *MockDebitExecutor) Calls() []DebitCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DebitCall(nil), m.calls...)
}

// Transactions returns the ids of successful debits, in call order.
func (m *MockDebitExecutor) Transactions() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.transactions...)
}

// --- Recurrent Payment Repository Mock ---

// MockRecurrentPaymentRepository is a mock implementation of recurrentpayment.Repository.
type MockRecurrentPaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*recurrentpayment.RecurrentPayment
	created  []*recurrentpayment.RecurrentPayment
	calls    int

	CreateFunc func(ctx context.Context, p *recurrentpayment.RecurrentPayment) error
}

func NewMockRecurrentPaymentRepository() *MockRecurrentPaymentRepository {
	return &MockRecurrentPaymentRepository{
		payments: make(map[uuid.UUID]*recurrentpayment.RecurrentPayment),
	}
}

func (m *MockRecurrentPaymentRepository) Create(ctx context.Context, p *recurrentpayment.RecurrentPayment) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, p); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	m.created = append(m.created, p)
	return nil
}

// Calls returns how many times Create was invoked, failed attempts included.
func (m *MockRecurrentPaymentRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Created returns the stored payments in insertion order.
func (m *MockRecurrentPaymentRepository) Created() []*recurrentpayment.RecurrentPayment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*recurrentpayment.RecurrentPayment(nil), m.created...)
}

func (m *MockRecurrentPaymentRepository) GetByID(id uuid.UUID) *recurrentpayment.RecurrentPayment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payments[id]
}
