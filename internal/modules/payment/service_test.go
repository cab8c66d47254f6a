package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"testing"

	"coworkspace/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 501 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkCaptured(ctx context.Context, paymentID int64, gatewayPaymentID, signature string) (bool, error) {
	args := m.Called(ctx, paymentID, gatewayPaymentID, signature)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) MarkRefunded(ctx context.Context, paymentID int64, refundID string, amount float64) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, refundID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SetGatewayOrder(ctx context.Context, id int64, orderID string) error {
	args := m.Called(ctx, id, orderID)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (*Order, error) {
	args := m.Called(ctx, amountPaise, currency, receipt, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, gatewayPaymentID string, amountPaise int64) (*Refund, error) {
	args := m.Called(ctx, gatewayPaymentID, amountPaise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Refund), args.Error(1)
}

func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

func (m *MockGateway) KeyID() string {
	return "rzp_test_key"
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func payableBooking() *domain.Booking {
	return &domain.Booking{
		ID:           77,
		UserID:       42,
		SpaceID:      10,
		TotalAmount:  45000,
		Status:       domain.BookingPending,
		PaymentState: domain.PaymentStatePending,
	}
}

func TestService_CreateOrder_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)
	mockPayments.On("GetByBookingID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)
	// 45,000 rupees is 4,500,000 paise.
	mockGateway.On("CreateOrder", mock.Anything, int64(4500000), "INR", "booking_77", mock.Anything).
		Return(&Order{ID: "order_abc", Amount: 4500000, Currency: "INR"}, nil)
	mockPayments.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("SetGatewayOrder", mock.Anything, int64(77), "order_abc").Return(nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	resp, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		BookingID: 77,
		Amount:    45000,
		UserID:    42,
	})

	assert.NoError(t, err)
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, int64(4500000), resp.AmountPaise)
	assert.Equal(t, "INR", resp.Currency)
	mockGateway.AssertExpectations(t)
	mockPayments.AssertExpectations(t)
	mockBookings.AssertExpectations(t)
}

func TestService_CreateOrder_AmountMismatch(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		BookingID: 77,
		Amount:    100, // client claims a much smaller total
		UserID:    42,
	})

	assert.ErrorIs(t, err, ErrAmountMismatch)
	mockGateway.AssertNotCalled(t, "CreateOrder")
}

func TestService_CreateOrder_Forbidden(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)

	service := NewService(new(MockPaymentRepository), mockBookings, new(MockGateway), newTestLogger(), "INR")

	_, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		BookingID: 77,
		Amount:    45000,
		UserID:    99,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

// A retry after a dismissed checkout gets the existing order back instead
// of a duplicate.
func TestService_CreateOrder_ReusesOpenOrder(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)
	mockPayments.On("GetByBookingID", mock.Anything, int64(77)).Return(&domain.Payment{
		ID:             501,
		BookingID:      77,
		Amount:         45000,
		Currency:       "INR",
		Status:         domain.PaymentCreated,
		GatewayOrderID: "order_abc",
	}, nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	resp, err := service.CreateOrder(context.Background(), CreateOrderRequest{
		BookingID: 77,
		Amount:    45000,
		UserID:    42,
	})

	assert.NoError(t, err)
	assert.Equal(t, "order_abc", resp.OrderID)
	mockGateway.AssertNotCalled(t, "CreateOrder")
}

func TestService_Verify_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockPayments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:             501,
		BookingID:      77,
		Amount:         45000,
		Status:         domain.PaymentCreated,
		GatewayOrderID: "order_abc",
	}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)
	mockGateway.On("VerifySignature", "order_abc", "pay_xyz", "sig_ok").Return(true)
	mockPayments.On("MarkCaptured", mock.Anything, int64(501), "pay_xyz", "sig_ok").Return(true, nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	resp, err := service.Verify(context.Background(), VerifyRequest{
		BookingID:         77,
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "sig_ok",
		UserID:            42,
	})

	assert.NoError(t, err)
	assert.False(t, resp.AlreadyCaptured)
	assert.Equal(t, string(domain.PaymentCaptured), resp.Status)
	mockPayments.AssertExpectations(t)
}

// A repeated callback for a captured payment is acknowledged without a
// second write.
func TestService_Verify_IdempotentRepeat(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockPayments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:             501,
		BookingID:      77,
		Status:         domain.PaymentCaptured,
		GatewayOrderID: "order_abc",
	}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)
	mockGateway.On("VerifySignature", "order_abc", "pay_xyz", "sig_ok").Return(true)
	mockPayments.On("MarkCaptured", mock.Anything, int64(501), "pay_xyz", "sig_ok").Return(false, nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	resp, err := service.Verify(context.Background(), VerifyRequest{
		BookingID:         77,
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "sig_ok",
		UserID:            42,
	})

	assert.NoError(t, err)
	assert.True(t, resp.AlreadyCaptured)
}

func TestService_Verify_InvalidSignature(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	mockPayments.On("GetByOrderID", mock.Anything, "order_abc").Return(&domain.Payment{
		ID:             501,
		BookingID:      77,
		Status:         domain.PaymentCreated,
		GatewayOrderID: "order_abc",
	}, nil)
	mockBookings.On("GetByID", mock.Anything, int64(77)).Return(payableBooking(), nil)
	mockGateway.On("VerifySignature", "order_abc", "pay_xyz", "sig_bad").Return(false)
	mockPayments.On("UpdateStatus", mock.Anything, int64(501), domain.PaymentFailed).Return(nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	_, err := service.Verify(context.Background(), VerifyRequest{
		BookingID:         77,
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "sig_bad",
		UserID:            42,
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	mockPayments.AssertNotCalled(t, "MarkCaptured")
	mockPayments.AssertExpectations(t)
}

func TestService_Refund_Success(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockBookings := new(MockBookingRepository)
	mockGateway := new(MockGateway)

	captured := &domain.Payment{
		ID:               501,
		BookingID:        77,
		Amount:           45000,
		Status:           domain.PaymentCaptured,
		GatewayPaymentID: "pay_xyz",
	}
	refunded := &domain.Payment{
		ID:        501,
		BookingID: 77,
		Amount:    45000,
		Status:    domain.PaymentRefunded,
		RefundID:  "rfnd_123",
	}

	mockPayments.On("GetByID", mock.Anything, int64(501)).Return(captured, nil)
	mockGateway.On("Refund", mock.Anything, "pay_xyz", int64(4500000)).
		Return(&Refund{ID: "rfnd_123", PaymentID: "pay_xyz", Amount: 4500000}, nil)
	mockPayments.On("MarkRefunded", mock.Anything, int64(501), "rfnd_123", 45000.0).Return(refunded, nil)

	service := NewService(mockPayments, mockBookings, mockGateway, newTestLogger(), "INR")

	p, err := service.Refund(context.Background(), 501)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, p.Status)
	assert.Equal(t, "rfnd_123", p.RefundID)
	mockGateway.AssertExpectations(t)
	mockPayments.AssertExpectations(t)
}

func TestService_Refund_NotRefundable(t *testing.T) {
	mockPayments := new(MockPaymentRepository)
	mockGateway := new(MockGateway)

	mockPayments.On("GetByID", mock.Anything, int64(501)).Return(&domain.Payment{
		ID:     501,
		Status: domain.PaymentCreated,
	}, nil)

	service := NewService(mockPayments, new(MockBookingRepository), mockGateway, newTestLogger(), "INR")

	_, err := service.Refund(context.Background(), 501)
	assert.ErrorIs(t, err, ErrNotRefundable)
	mockGateway.AssertNotCalled(t, "Refund")
}

func TestPaise(t *testing.T) {
	assert.Equal(t, int64(4500000), Paise(45000))
	assert.Equal(t, int64(100), Paise(1))
	assert.Equal(t, int64(12345), Paise(123.45))
}

func TestRazorpayClient_VerifySignature(t *testing.T) {
	client := NewRazorpayClient("rzp_test_key", "topsecret", "https://api.razorpay.com")

	mac := hmac.New(sha256.New, []byte("topsecret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", valid))
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", "tampered"))
	assert.False(t, client.VerifySignature("order_other", "pay_xyz", valid))
}
