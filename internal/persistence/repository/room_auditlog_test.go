package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/persistence/db"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestRoomAuditLogRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("GetByRoomID decodes newest first with limit", func(mt *mtest.T) {
		req := require.New(mt)
		ctx := context.Background()
		ns := mt.DB.Name() + "." + db.RoomAuditLogsCollection
		ts := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "log-2"},
				{Key: "room_id", Value: "room-1"},
				{Key: "event_type", Value: string(domain.EventRoomDeleted)},
				{Key: "timestamp", Value: primitive.NewDateTimeFromTime(ts.Add(time.Minute))},
				{Key: "metadata", Value: bson.D{{Key: "reason", Value: "expired"}}},
			},
			bson.D{
				{Key: "_id", Value: "log-1"},
				{Key: "room_id", Value: "room-1"},
				{Key: "event_type", Value: string(domain.EventRoomCreated)},
				{Key: "timestamp", Value: primitive.NewDateTimeFromTime(ts)},
			},
		))

		repo := NewRoomAuditLogRepository(mt.DB)
		logs, err := repo.GetByRoomID(ctx, "room-1", 2)
		req.NoError(err)
		req.Len(logs, 2)
		req.Equal("log-2", logs[0].ID)
		req.Equal(domain.EventRoomDeleted, logs[0].EventType)
		req.Equal("expired", logs[0].Metadata["reason"])
		req.True(ts.Equal(logs[1].Timestamp))

		started := mt.GetStartedEvent()
		req.Equal("find", started.CommandName)
		req.Equal("room-1", started.Command.Lookup("filter", "room_id").StringValue())
		req.Equal(int32(-1), started.Command.Lookup("sort", "timestamp").AsInt32())
		req.Equal(int64(2), started.Command.Lookup("limit").AsInt64())
	})

	mt.Run("GetByRoomID without limit", func(mt *mtest.T) {
		req := require.New(mt)
		ns := mt.DB.Name() + "." + db.RoomAuditLogsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		logs, err := NewRoomAuditLogRepository(mt.DB).GetByRoomID(context.Background(), "room-1", 0)
		req.NoError(err)
		req.Empty(logs)

		_, err = mt.GetStartedEvent().Command.LookupErr("limit")
		req.Error(err)
	})

	mt.Run("Log inserts the entry", func(mt *mtest.T) {
		req := require.New(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		entry := domain.NewRoomAuditLog(domain.RoomEvent{
			Type:       domain.EventRoomCreated,
			RoomID:     "room-1",
			Username:   "alice",
			OccurredAt: time.Now(),
		})
		req.NoError(NewRoomAuditLogRepository(mt.DB).Log(context.Background(), entry))

		started := mt.GetStartedEvent()
		req.Equal("insert", started.CommandName)
		docs, err := started.Command.Lookup("documents").Array().Values()
		req.NoError(err)
		req.Len(docs, 1)
		req.Equal("room-1", docs[0].Document().Lookup("room_id").StringValue())
	})

	mt.Run("EnsureIndexes creates the ttl index", func(mt *mtest.T) {
		req := require.New(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		req.NoError(NewRoomAuditLogRepository(mt.DB).EnsureIndexes(context.Background()))

		started := mt.GetStartedEvent()
		req.Equal("createIndexes", started.CommandName)
		indexes, err := started.Command.Lookup("indexes").Array().Values()
		req.NoError(err)
		req.Len(indexes, 3)
		ttl := indexes[2].Document().Lookup("expireAfterSeconds").AsInt32()
		req.Equal(int32(auditRetention.Seconds()), ttl)
	})

	mt.Run("Log surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := NewRoomAuditLogRepository(mt.DB).Log(context.Background(), &domain.RoomAuditLog{ID: "log-1", RoomID: "room-1"})
		require.Error(mt, err)
	})
}
