package service

import (
	"context"
	"errors"
	"testing"

	"garageportal/internal/vehicles/upload"
	"garageportal/internal/vehicles/validator"
	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/events"
	"garageportal/pkg/logger"
	"garageportal/pkg/model"
	"garageportal/pkg/session"
)

type mockVehiclesAPI struct {
	listFunc   func(ctx context.Context, token string) ([]model.Vehicle, error)
	addFunc    func(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error)
	updateFunc func(ctx context.Context, token string, vehicleID int, in model.VehicleInput) (model.Vehicle, error)
	deleteFunc func(ctx context.Context, token string, vehicleID int) error
}

func (m *mockVehiclesAPI) List(ctx context.Context, token string) ([]model.Vehicle, error) {
	return m.listFunc(ctx, token)
}

func (m *mockVehiclesAPI) Add(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error) {
	return m.addFunc(ctx, token, in)
}

func (m *mockVehiclesAPI) Update(ctx context.Context, token string, vehicleID int, in model.VehicleInput) (model.Vehicle, error) {
	return m.updateFunc(ctx, token, vehicleID, in)
}

func (m *mockVehiclesAPI) Delete(ctx context.Context, token string, vehicleID int) error {
	return m.deleteFunc(ctx, token, vehicleID)
}

func newVehicleService(api VehiclesAPI, tracker *upload.Tracker) VehicleService {
	if tracker == nil {
		tracker = upload.NewTracker()
	}
	return NewVehicleService(
		api,
		validator.NewVehicleValidator(logger.Discard()),
		nil, // uploader not exercised in these tests
		tracker,
		events.NewPublisher(nil, "", "test", logger.Discard()),
		logger.Discard(),
	)
}

func ownerSession() *session.Session {
	return &session.Session{UserID: "42", Role: model.RoleVehicleOwner, Token: "test-token"}
}

func validInput() model.VehicleInput {
	return model.VehicleInput{
		Brand:        "Toyota",
		Model:        "Corolla",
		Year:         2021,
		LicensePlate: "ABC-1234",
	}
}

func TestVehicleService_Add(t *testing.T) {
	t.Run("appends the created vehicle to the local list", func(t *testing.T) {
		api := &mockVehiclesAPI{
			listFunc: func(ctx context.Context, token string) ([]model.Vehicle, error) {
				return []model.Vehicle{{VehicleID: 1, Brand: "Honda"}}, nil
			},
			addFunc: func(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error) {
				return model.Vehicle{VehicleID: 2, Brand: in.Brand, LicensePlate: in.LicensePlate}, nil
			},
		}
		svc := newVehicleService(api, nil)
		sess := ownerSession()

		if _, err := svc.List(context.Background(), sess); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		in := validInput()
		vehicles, err := svc.Add(context.Background(), sess, &in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vehicles) != 2 || vehicles[1].VehicleID != 2 {
			t.Errorf("expected created vehicle appended, got %+v", vehicles)
		}
	})

	t.Run("invalid payload makes no network call", func(t *testing.T) {
		called := false
		api := &mockVehiclesAPI{
			addFunc: func(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error) {
				called = true
				return model.Vehicle{}, nil
			},
		}
		svc := newVehicleService(api, nil)

		in := validInput()
		in.LicensePlate = "bad"
		_, err := svc.Add(context.Background(), ownerSession(), &in)
		if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		if called {
			t.Error("upstream add must not be called")
		}
	})

	t.Run("pending upload blocks submission", func(t *testing.T) {
		tracker := upload.NewTracker()
		tracker.Begin("42", "car.png", 100)

		called := false
		api := &mockVehiclesAPI{
			addFunc: func(ctx context.Context, token string, in model.VehicleInput) (model.Vehicle, error) {
				called = true
				return model.Vehicle{}, nil
			},
		}
		svc := newVehicleService(api, tracker)

		in := validInput()
		_, err := svc.Add(context.Background(), ownerSession(), &in)
		if err == nil {
			t.Fatal("expected gate error")
		}
		if apperrors.AsAppError(err).Message != upload.GateMessage {
			t.Errorf("expected gate message, got %q", apperrors.AsAppError(err).Message)
		}
		if called {
			t.Error("upstream add must not be called while upload is pending")
		}
	})

	t.Run("failed upload keeps submission blocked", func(t *testing.T) {
		tracker := upload.NewTracker()
		tracker.Begin("42", "car.png", 100)
		tracker.Fail("42", errors.New("boom"))

		svc := newVehicleService(&mockVehiclesAPI{}, tracker)

		in := validInput()
		if _, err := svc.Add(context.Background(), ownerSession(), &in); err == nil {
			t.Fatal("expected gate error after failed upload")
		}
	})
}

func TestVehicleService_Update(t *testing.T) {
	api := &mockVehiclesAPI{
		listFunc: func(ctx context.Context, token string) ([]model.Vehicle, error) {
			return []model.Vehicle{
				{VehicleID: 1, Brand: "Honda"},
				{VehicleID: 2, Brand: "Toyota"},
			}, nil
		},
		updateFunc: func(ctx context.Context, token string, vehicleID int, in model.VehicleInput) (model.Vehicle, error) {
			return model.Vehicle{VehicleID: vehicleID, Brand: in.Brand, Year: in.Year, LicensePlate: in.LicensePlate}, nil
		},
	}
	svc := newVehicleService(api, nil)
	sess := ownerSession()

	if _, err := svc.List(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validInput()
	in.Brand = "Mazda"
	vehicles, err := svc.Update(context.Background(), sess, 2, &in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicles[1].Brand != "Mazda" {
		t.Errorf("expected local row patched, got %+v", vehicles[1])
	}
	if vehicles[0].Brand != "Honda" {
		t.Errorf("expected other rows untouched, got %+v", vehicles[0])
	}
}

func TestVehicleService_Delete(t *testing.T) {
	t.Run("removes the row after upstream success", func(t *testing.T) {
		api := &mockVehiclesAPI{
			listFunc: func(ctx context.Context, token string) ([]model.Vehicle, error) {
				return []model.Vehicle{{VehicleID: 1}, {VehicleID: 2}}, nil
			},
			deleteFunc: func(ctx context.Context, token string, vehicleID int) error {
				return nil
			},
		}
		svc := newVehicleService(api, nil)
		sess := ownerSession()

		if _, err := svc.List(context.Background(), sess); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		vehicles, err := svc.Delete(context.Background(), sess, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vehicles) != 1 || vehicles[0].VehicleID != 2 {
			t.Errorf("expected only vehicle 2 left, got %+v", vehicles)
		}
	})

	t.Run("upstream failure leaves the list untouched", func(t *testing.T) {
		api := &mockVehiclesAPI{
			listFunc: func(ctx context.Context, token string) ([]model.Vehicle, error) {
				return []model.Vehicle{{VehicleID: 1}, {VehicleID: 2}}, nil
			},
			deleteFunc: func(ctx context.Context, token string, vehicleID int) error {
				return errors.New("boom")
			},
		}
		svc := newVehicleService(api, nil)
		sess := ownerSession()

		if _, err := svc.List(context.Background(), sess); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Delete(context.Background(), sess, 1); err == nil {
			t.Fatal("expected error")
		}

		vehicles, err := svc.List(context.Background(), sess)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(vehicles) != 2 {
			t.Errorf("expected both vehicles still present, got %d", len(vehicles))
		}
	})
}
