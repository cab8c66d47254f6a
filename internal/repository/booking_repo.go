package repository

import (
	"context"
	"time"

	"coworkspace/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	UserID         int64      `gorm:"column:user_id;not null;index"`
	SpaceID        int64      `gorm:"column:space_id;not null;index"`
	StartTime      time.Time  `gorm:"column:start_time"`
	EndTime        time.Time  `gorm:"column:end_time"`
	DurationMonths int        `gorm:"column:duration_months"`
	TotalAmount    float64    `gorm:"column:total_amount"`
	Status         string     `gorm:"column:status;size:20;index"`
	PaymentStatus  string     `gorm:"column:payment_status;size:20;index"`
	GatewayOrderID *string    `gorm:"column:razorpay_order_id"`
	GatewayPayID   *string    `gorm:"column:razorpay_payment_id"`
	Notes          *string    `gorm:"column:notes;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, orderID, payID string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.GatewayOrderID != nil {
		orderID = *m.GatewayOrderID
	}
	if m.GatewayPayID != nil {
		payID = *m.GatewayPayID
	}

	return &domain.Booking{
		ID:             m.ID,
		UserID:         m.UserID,
		SpaceID:        m.SpaceID,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		DurationMonths: m.DurationMonths,
		TotalAmount:    m.TotalAmount,
		Status:         domain.BookingStatus(m.Status),
		PaymentState:   domain.PaymentState(m.PaymentStatus),
		GatewayOrderID: orderID,
		GatewayPayID:   payID,
		Notes:          notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		CancelledAt:    m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, orderID, payID *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.GatewayOrderID != "" {
		v := b.GatewayOrderID
		orderID = &v
	}
	if b.GatewayPayID != "" {
		v := b.GatewayPayID
		payID = &v
	}

	return bookingModel{
		ID:             b.ID,
		UserID:         b.UserID,
		SpaceID:        b.SpaceID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		DurationMonths: b.DurationMonths,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		PaymentStatus:  string(b.PaymentState),
		GatewayOrderID: orderID,
		GatewayPayID:   payID,
		Notes:          notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		CancelledAt:    b.CancelledAt,
	}
}

// BookingDetails is the denormalized projection used by booking lists and
// the admin back office: a booking joined with its profile, space and
// location. The free-text search fields live here.
type BookingDetails struct {
	Booking domain.Booking

	UserEmail    string
	UserFullName string
	UserPhone    string
	SpaceName    string
	SpaceType    string
	LocationName string
	LocationCity string
	// LocationActive is carried so historical rows keep rendering after a
	// location is deactivated.
	LocationActive bool
}

type bookingDetailsRow struct {
	bookingModel

	UserEmail      string  `gorm:"column:user_email"`
	UserFullName   string  `gorm:"column:user_full_name"`
	UserPhone      *string `gorm:"column:user_phone"`
	SpaceName      string  `gorm:"column:space_name"`
	SpaceType      string  `gorm:"column:space_type"`
	LocationName   string  `gorm:"column:location_name"`
	LocationCity   string  `gorm:"column:location_city"`
	LocationActive bool    `gorm:"column:location_active"`
}

func toBookingDetails(row bookingDetailsRow) BookingDetails {
	var phone string
	if row.UserPhone != nil {
		phone = *row.UserPhone
	}
	return BookingDetails{
		Booking:        *toDomainBooking(row.bookingModel),
		UserEmail:      row.UserEmail,
		UserFullName:   row.UserFullName,
		UserPhone:      phone,
		SpaceName:      row.SpaceName,
		SpaceType:      row.SpaceType,
		LocationName:   row.LocationName,
		LocationCity:   row.LocationCity,
		LocationActive: row.LocationActive,
	}
}

const bookingDetailsSelect = `
bookings.*,
profiles.email AS user_email,
profiles.full_name AS user_full_name,
profiles.phone AS user_phone,
spaces.name AS space_name,
spaces.type AS space_type,
locations.name AS location_name,
locations.city AS location_city,
locations.is_active AS location_active
`

func (r *BookingRepository) detailsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingDetailsSelect).
		Joins("JOIN profiles ON profiles.id = bookings.user_id").
		Joins("JOIN spaces ON spaces.id = bookings.space_id").
		Joins("JOIN locations ON locations.id = spaces.location_id")
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetDetailsByID(ctx context.Context, id int64) (*BookingDetails, error) {
	var row bookingDetailsRow
	tx := r.detailsQuery(ctx).Where("bookings.id = ?", id).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	d := toBookingDetails(row)
	return &d, nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID int64) ([]BookingDetails, error) {
	var rows []bookingDetailsRow
	err := r.detailsQuery(ctx).
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingDetails(row))
	}
	return out, nil
}

// GetAllDetails returns every booking with its joins, newest first. The
// back office filters the fetched set in memory.
func (r *BookingRepository) GetAllDetails(ctx context.Context) ([]BookingDetails, error) {
	var rows []bookingDetailsRow
	err := r.detailsQuery(ctx).
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]BookingDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingDetails(row))
	}
	return out, nil
}

// CheckAvailability reports whether the space is free of non-cancelled
// bookings overlapping [start, end).
func (r *BookingRepository) CheckAvailability(ctx context.Context, spaceID int64, start, end time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("space_id = ?", spaceID).
		Where("status NOT IN ?", []string{string(domain.BookingCancelled)}).
		Where("start_time < ? AND end_time > ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": string(status), "updated_at": time.Now()}
	if status == domain.BookingCancelled {
		updates["cancelled_at"] = time.Now()
	}
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) SetGatewayOrder(ctx context.Context, id int64, orderID string) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Update("razorpay_order_id", orderID)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("created_at >= ?", since).
		Count(&cnt).Error
	return cnt, err
}

// PaidRevenue sums total_amount over bookings whose payment state is paid.
func (r *BookingRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var total *float64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("SUM(total_amount)").
		Where("payment_status = ?", string(domain.PaymentStatePaid)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
