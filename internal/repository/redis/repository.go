// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openedu/crooms/internal/config"
	"github.com/openedu/crooms/internal/models"
)

// Common errors
var (
	ErrNotFound = models.ErrBookingNotFound
)

// Repository implements the repository interface with Redis storage.
// Bookings are stored as JSON values; two index sets (per user and per
// room+date) keep the listing operations from scanning the keyspace.
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		if opt.DB == 0 {
			opt.DB = cfg.DB
		}
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

		client = redis.NewClient(&redis.Options{
			Addr:     address,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.BookingTTL,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// bookingKey returns the Redis key for a booking
func (r *Repository) bookingKey(id int) string {
	return fmt.Sprintf("%sbookings:%d", r.keyPrefix, id)
}

// userIndexKey returns the Redis key for a user's booking id set
func (r *Repository) userIndexKey(userID int) string {
	return fmt.Sprintf("%sbookings:user:%d", r.keyPrefix, userID)
}

// roomDateIndexKey returns the Redis key for a room+date booking id set
func (r *Repository) roomDateIndexKey(roomID int, date string) string {
	return fmt.Sprintf("%sbookings:room:%d:%s", r.keyPrefix, roomID, date)
}

// nextIDKey returns the Redis key of the booking id counter
func (r *Repository) nextIDKey() string {
	return fmt.Sprintf("%sbookings:next_id", r.keyPrefix)
}

// CreateBooking stores a new booking and assigns its id from the counter
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	id, err := r.client.Incr(ctx, r.nextIDKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate booking id: %w", err)
	}
	booking.ID = int(id)

	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	// Write the booking and both index entries in one roundtrip
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.bookingKey(booking.ID), data, r.ttl)
	pipe.SAdd(ctx, r.userIndexKey(booking.UserID), booking.ID)
	pipe.SAdd(ctx, r.roomDateIndexKey(booking.RoomID, booking.Date), booking.ID)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.userIndexKey(booking.UserID), r.ttl)
		pipe.Expire(ctx, r.roomDateIndexKey(booking.RoomID, booking.Date), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}

	return nil
}

// GetBooking retrieves a booking by id
func (r *Repository) GetBooking(ctx context.Context, id int) (*models.Booking, error) {
	data, err := r.client.Get(ctx, r.bookingKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking: %w", err)
	}

	return &booking, nil
}

// ListBookingsByUser returns all bookings created by the user, in creation order
func (r *Repository) ListBookingsByUser(ctx context.Context, userID int) ([]*models.Booking, error) {
	return r.listByIndex(ctx, r.userIndexKey(userID), nil)
}

// ListBookingsByRoomAndDate returns every booking for the room on the exact
// date, regardless of status
func (r *Repository) ListBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error) {
	return r.listByIndex(ctx, r.roomDateIndexKey(roomID, date), nil)
}

// ListApprovedBookingsByRoomAndDate returns only approved bookings for the
// room on the exact date
func (r *Repository) ListApprovedBookingsByRoomAndDate(ctx context.Context, roomID int, date string) ([]*models.Booking, error) {
	return r.listByIndex(ctx, r.roomDateIndexKey(roomID, date), func(b *models.Booking) bool {
		return b.Status == models.BookingStatusApproved
	})
}

// listByIndex resolves an id set and fetches the bookings with a single MGET.
// Index entries whose booking has expired are skipped.
func (r *Repository) listByIndex(ctx context.Context, indexKey string, match func(*models.Booking) bool) ([]*models.Booking, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read booking index: %w", err)
	}

	if len(ids) == 0 {
		return []*models.Booking{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf("%sbookings:%s", r.keyPrefix, id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking data: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}

		strData, ok := v.(string)
		if !ok {
			continue
		}

		var booking models.Booking
		if err := json.Unmarshal([]byte(strData), &booking); err != nil {
			continue
		}

		if match != nil && !match(&booking) {
			continue
		}

		bookings = append(bookings, &booking)
	}

	// Sets are unordered; return bookings in creation order
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ID < bookings[j].ID
	})

	return bookings, nil
}

// UpdateBookingStatus changes the approval state of a booking
func (r *Repository) UpdateBookingStatus(ctx context.Context, id int, status models.BookingStatus) error {
	booking, err := r.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	booking.Status = status

	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	if err := r.client.Set(ctx, r.bookingKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	return nil
}

// DeleteBooking removes a booking and its index entries
func (r *Repository) DeleteBooking(ctx context.Context, id int) error {
	booking, err := r.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.bookingKey(id))
	pipe.SRem(ctx, r.userIndexKey(booking.UserID), id)
	pipe.SRem(ctx, r.roomDateIndexKey(booking.RoomID, booking.Date), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}
