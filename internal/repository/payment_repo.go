package repository

import (
	"context"
	"time"

	"coworkspace/internal/domain"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	BookingID        int64     `gorm:"column:booking_id;not null;index"`
	Amount           float64   `gorm:"column:amount"`
	Currency         string    `gorm:"column:currency;size:8"`
	Status           string    `gorm:"column:status;size:20;index"`
	GatewayOrderID   *string   `gorm:"column:razorpay_order_id;index"`
	GatewayPaymentID *string   `gorm:"column:razorpay_payment_id"`
	GatewaySignature *string   `gorm:"column:razorpay_signature"`
	Receipt          *string   `gorm:"column:receipt;size:64"`
	RefundID         *string   `gorm:"column:refund_id"`
	RefundAmount     *float64  `gorm:"column:refund_amount"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	deref := func(p *string) string {
		if p != nil {
			return *p
		}
		return ""
	}

	return &domain.Payment{
		ID:               m.ID,
		BookingID:        m.BookingID,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Status:           domain.PaymentStatus(m.Status),
		GatewayOrderID:   deref(m.GatewayOrderID),
		GatewayPaymentID: deref(m.GatewayPaymentID),
		GatewaySignature: deref(m.GatewaySignature),
		Receipt:          deref(m.Receipt),
		RefundID:         deref(m.RefundID),
		RefundAmount:     m.RefundAmount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toPaymentModel(p *domain.Payment) paymentModel {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		v := s
		return &v
	}

	return paymentModel{
		ID:               p.ID,
		BookingID:        p.BookingID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		Status:           string(p.Status),
		GatewayOrderID:   opt(p.GatewayOrderID),
		GatewayPaymentID: opt(p.GatewayPaymentID),
		GatewaySignature: opt(p.GatewaySignature),
		Receipt:          opt(p.Receipt),
		RefundID:         opt(p.RefundID),
		RefundAmount:     p.RefundAmount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PaymentDetails joins a payment with its booking, payer and space for the
// back-office listing.
type PaymentDetails struct {
	Payment domain.Payment

	BookingStatus string
	UserEmail     string
	UserFullName  string
	SpaceName     string
	LocationName  string
	LocationCity  string
}

type paymentDetailsRow struct {
	paymentModel

	BookingStatus string `gorm:"column:booking_status"`
	UserEmail     string `gorm:"column:user_email"`
	UserFullName  string `gorm:"column:user_full_name"`
	SpaceName     string `gorm:"column:space_name"`
	LocationName  string `gorm:"column:location_name"`
	LocationCity  string `gorm:"column:location_city"`
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := toPaymentModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", orderID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetAllDetails(ctx context.Context) ([]PaymentDetails, error) {
	var rows []paymentDetailsRow
	err := r.db.WithContext(ctx).
		Table("payments").
		Select(`payments.*,
bookings.status AS booking_status,
profiles.email AS user_email,
profiles.full_name AS user_full_name,
spaces.name AS space_name,
locations.name AS location_name,
locations.city AS location_city`).
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("JOIN profiles ON profiles.id = bookings.user_id").
		Joins("JOIN spaces ON spaces.id = bookings.space_id").
		Joins("JOIN locations ON locations.id = spaces.location_id").
		Order("payments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PaymentDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, PaymentDetails{
			Payment:       *toDomainPayment(row.paymentModel),
			BookingStatus: row.BookingStatus,
			UserEmail:     row.UserEmail,
			UserFullName:  row.UserFullName,
			SpaceName:     row.SpaceName,
			LocationName:  row.LocationName,
			LocationCity:  row.LocationCity,
		})
	}
	return out, nil
}

// MarkCaptured records a successful capture and mirrors the paid state onto
// the parent booking in a single transaction, so the pairing invariant
// cannot be broken by a partial failure. Returns false when the payment was
// already captured (repeat verification calls are no-ops).
func (r *PaymentRepository) MarkCaptured(ctx context.Context, paymentID int64, gatewayPaymentID, signature string) (bool, error) {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m paymentModel
		if err := tx.First(&m, paymentID).Error; err != nil {
			return err
		}
		if m.Status == string(domain.PaymentCaptured) {
			return nil
		}

		now := time.Now()
		res := tx.Model(&paymentModel{}).
			Where("id = ? AND status <> ?", paymentID, string(domain.PaymentCaptured)).
			Updates(map[string]any{
				"status":              string(domain.PaymentCaptured),
				"razorpay_payment_id": gatewayPaymentID,
				"razorpay_signature":  signature,
				"updated_at":          now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&bookingModel{}).
			Where("id = ?", m.BookingID).
			Updates(map[string]any{
				"status":              string(domain.BookingConfirmed),
				"payment_status":      string(domain.PaymentStatePaid),
				"razorpay_payment_id": gatewayPaymentID,
				"updated_at":          now,
			}).Error; err != nil {
			return err
		}

		changed = true
		return nil
	})
	return changed, err
}

// MarkRefunded flips the payment to refunded and the parent booking's
// payment state to refunded atomically.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, paymentID int64, refundID string, amount float64) (*domain.Payment, error) {
	var out *domain.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m paymentModel
		if err := tx.First(&m, paymentID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&paymentModel{}).
			Where("id = ?", paymentID).
			Updates(map[string]any{
				"status":        string(domain.PaymentRefunded),
				"refund_id":     refundID,
				"refund_amount": amount,
				"updated_at":    now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&bookingModel{}).
			Where("id = ?", m.BookingID).
			Updates(map[string]any{
				"payment_status": string(domain.PaymentStateRefunded),
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		m.Status = string(domain.PaymentRefunded)
		m.RefundID = &refundID
		m.RefundAmount = &amount
		out = toDomainPayment(m)
		return nil
	})
	return out, err
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
