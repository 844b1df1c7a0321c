package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/marketplace-checkout/pkg/db/models"
	"github.com/angelmondragon/marketplace-checkout/pkg/enums"
	"github.com/angelmondragon/marketplace-checkout/pkg/outbox/payloads"
)

func newOutboxDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:outbox_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.OutboxEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestEmitStoresEnvelopeInsideTransaction(t *testing.T) {
	t.Parallel()

	conn := newOutboxDB(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)
	orderID := uuid.New()
	customerID := uuid.New()

	err := conn.Transaction(func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderID,
			Actor:         &ActorRef{CustomerID: customerID},
			Data:          payloads.OrderCreatedEvent{OrderID: orderID, TotalCents: 4300},
		})
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	rows, err := repo.FetchUnpublished(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	var envelope PayloadEnvelope
	if err := json.Unmarshal(rows[0].Payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Version != currentVersion || envelope.EventID == "" || envelope.OccurredAt.IsZero() {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
	if envelope.Actor == nil || envelope.Actor.CustomerID != customerID {
		t.Fatalf("actor not preserved: %+v", envelope.Actor)
	}
	var data payloads.OrderCreatedEvent
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.OrderID != orderID || data.TotalCents != 4300 {
		t.Fatalf("unexpected data %+v", data)
	}
}

func TestEmitRolledBackWithTransaction(t *testing.T) {
	t.Parallel()

	conn := newOutboxDB(t)
	repo := NewRepository(conn)
	svc := NewService(repo, nil)

	boom := errors.New("boom")
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Data:          map[string]string{"k": "v"},
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected rollback error, got %v", err)
	}

	rows, err := repo.FetchUnpublished(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected rollback to discard event, got %d rows", len(rows))
	}
}

func TestEmitValidatesEvent(t *testing.T) {
	t.Parallel()

	conn := newOutboxDB(t)
	svc := NewService(NewRepository(conn), nil)
	ctx := context.Background()

	if err := svc.Emit(ctx, nil, DomainEvent{}); err == nil {
		t.Fatalf("expected missing tx error")
	}
	if err := svc.Emit(ctx, conn, DomainEvent{EventType: "bogus", AggregateType: enums.AggregateOrder, AggregateID: uuid.New()}); err == nil {
		t.Fatalf("expected invalid event type error")
	}
	if err := svc.Emit(ctx, conn, DomainEvent{EventType: enums.EventOrderCreated, AggregateType: enums.AggregateOrder}); err == nil {
		t.Fatalf("expected missing aggregate id error")
	}
}

func TestRepositoryPublishLifecycle(t *testing.T) {
	t.Parallel()

	conn := newOutboxDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := &models.OutboxEvent{EventType: enums.EventOrderCreated, AggregateType: enums.AggregateOrder, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`)}
	second := &models.OutboxEvent{EventType: enums.EventOrderCreated, AggregateType: enums.AggregateOrder, AggregateID: uuid.New(), Payload: json.RawMessage(`{}`)}
	for _, ev := range []*models.OutboxEvent{first, second} {
		if err := repo.Insert(conn, ev); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	if err := repo.MarkPublished(ctx, first.ID); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if err := repo.MarkFailed(ctx, second.ID, errors.New("publish timeout")); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	rows, err := repo.FetchUnpublished(ctx, 10, 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != second.ID {
		t.Fatalf("expected only the failed row, got %+v", rows)
	}
	if rows[0].AttemptCount != 1 || rows[0].LastError == nil || *rows[0].LastError != "publish timeout" {
		t.Fatalf("failure not recorded: %+v", rows[0])
	}

	if err := repo.MarkTerminal(ctx, second.ID, 3, errors.New("bad payload")); err != nil {
		t.Fatalf("mark terminal: %v", err)
	}
	rows, err = repo.FetchUnpublished(ctx, 10, 3)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("terminal row should not be fetched, got %d", len(rows))
	}
}
