package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/google/uuid"
)

func TestEarningService_RecordEarning(t *testing.T) {
	ctx := context.Background()
	vendorID := uuid.New()

	existingVendor := &storage.MockVendorStorage{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
			return &models.Vendor{ID: id}, nil
		},
	}

	tests := []struct {
		name       string
		gross      string
		commission string
		vendors    *storage.MockVendorStorage
		wantNet    string
		wantErr    error
	}{
		{name: "net is gross minus commission", gross: "120.00", commission: "20.00", vendors: existingVendor, wantNet: "100"},
		{name: "zero commission", gross: "99.99", commission: "0", vendors: existingVendor, wantNet: "99.99"},
		{name: "zero gross", gross: "0", commission: "0", vendors: existingVendor, wantErr: ErrInvalidEarningAmount},
		{name: "negative commission", gross: "10", commission: "-1", vendors: existingVendor, wantErr: ErrInvalidEarningAmount},
		{name: "commission above gross", gross: "10", commission: "11", vendors: existingVendor, wantErr: ErrInvalidEarningAmount},
		{name: "unknown vendor", gross: "10", commission: "1", vendors: &storage.MockVendorStorage{}, wantErr: storage.ErrVendorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored *models.Earning
			svc := NewEarningService(&storage.MockEarningStorage{
				CreateFunc: func(ctx context.Context, e *models.Earning) error {
					stored = e
					return nil
				},
			}, tt.vendors, nil)

			got, err := svc.RecordEarning(ctx, vendorID, " order-1 ", d(tt.gross), d(tt.commission))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("RecordEarning() error = %v, want %v", err, tt.wantErr)
				}
				if stored != nil {
					t.Error("earning must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("RecordEarning() error = %v", err)
			}

			if !got.NetAmount.Equal(d(tt.wantNet)) {
				t.Errorf("NetAmount = %s, want %s", got.NetAmount, tt.wantNet)
			}
			if got.Status != models.EarningStatusPending {
				t.Errorf("Status = %s, want pending", got.Status)
			}
			if got.OrderRef != "order-1" {
				t.Errorf("OrderRef = %q, want trimmed", got.OrderRef)
			}
		})
	}
}

func TestEarningReleaser_Release(t *testing.T) {
	var gotCutoff, gotNow time.Time
	mock := &storage.MockEarningStorage{
		ReleasePendingFunc: func(ctx context.Context, cutoff, now time.Time) (int64, error) {
			gotCutoff, gotNow = cutoff, now
			return 3, nil
		},
	}

	w := NewEarningReleaser(mock, 72*time.Hour, "", nil)
	w.now = func() time.Time { return testNow }

	n, err := w.Release(context.Background())
	if err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Release() = %d, want 3", n)
	}
	if !gotNow.Equal(testNow) {
		t.Errorf("now = %v, want %v", gotNow, testNow)
	}
	if want := testNow.Add(-72 * time.Hour); !gotCutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", gotCutoff, want)
	}
}

func TestEarningReleaser_ReleaseError(t *testing.T) {
	w := NewEarningReleaser(&storage.MockEarningStorage{
		ReleasePendingFunc: func(ctx context.Context, cutoff, now time.Time) (int64, error) {
			return 0, errors.New("db down")
		},
	}, time.Hour, "@every 1m", nil)

	if _, err := w.Release(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestEarningReleaser_StartRunsInitialPassAndStops(t *testing.T) {
	calls := make(chan struct{}, 10)
	w := NewEarningReleaser(&storage.MockEarningStorage{
		ReleasePendingFunc: func(ctx context.Context, cutoff, now time.Time) (int64, error) {
			calls <- struct{}{}
			return 0, nil
		},
	}, time.Hour, "@every 1h", nil)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("initial release pass did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)
}

func TestEarningReleaser_BadSchedule(t *testing.T) {
	w := NewEarningReleaser(&storage.MockEarningStorage{}, time.Hour, "every now and then", nil)
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected schedule parse error")
	}
}
