package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/pkg/logger"
	"beautyadmin/pkg/metrics"
)

// notifier отправляет события изменения сущностей.
// Ошибки публикации только логируются: запись уже изменена
type notifier struct {
	publisher infrastructure.MessagePublisher
	now       func() time.Time
}

func newNotifier(publisher infrastructure.MessagePublisher) notifier {
	if publisher == nil {
		publisher = infrastructure.NoopPublisher{}
	}
	return notifier{publisher: publisher, now: time.Now}
}

func (n notifier) created(ctx context.Context, kind entity.Kind, id int64) {
	n.publish(ctx, entity.ActionCreated, entity.NewEvent(kind, entity.ActionCreated, id, n.now()))
}

func (n notifier) updated(ctx context.Context, kind entity.Kind, id int64) {
	n.publish(ctx, entity.ActionUpdated, entity.NewEvent(kind, entity.ActionUpdated, id, n.now()))
}

func (n notifier) deleted(ctx context.Context, kind entity.Kind, id int64, cascaded []entity.Ref) {
	event := entity.NewEvent(kind, entity.ActionDeleted, id, n.now())
	event.Cascaded = cascaded
	n.publish(ctx, entity.ActionDeleted, event)
}

func (n notifier) publish(ctx context.Context, action entity.EventAction, event entity.Event) {
	metrics.RecordMutation(string(event.Entity), string(action))

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal admin event")
		return
	}

	// ключ - тип и id записи, события одной записи попадают в одну партицию
	key := string(event.Entity) + ":" + strconv.FormatInt(event.EntityID, 10)
	if err := n.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", event.EventType).
			Int64("entity_id", event.EntityID).
			Msg("Failed to publish admin event")
	}
}
