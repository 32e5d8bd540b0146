package components

import (
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/hold"
	"studio-booking/internal/infra/notifier"
	"studio-booking/internal/infra/readstore"
	"studio-booking/internal/infra/uow"
	infraverification "studio-booking/internal/infra/verification"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			hold.NewRedisHoldStore,
			fx.As(new(shared.HoldStore)),
		),
		fx.Annotate(
			infraverification.NewRedisCodeStore,
			fx.As(new(shared.CodeStore)),
		),
		fx.Annotate(
			NewCodeNotifier,
			fx.As(new(shared.Notifier)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewAgendaReadStore,
			fx.As(new(queries.AgendaViewRepo)),
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}

func NewCodeNotifier(conn *amqp.Connection, cfg config.Config) *notifier.AMQPNotifier {
	return notifier.NewAMQPNotifier(conn, cfg.MQ.CodeQueue)
}
