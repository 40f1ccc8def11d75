package store

import (
	"context"
	"testing"
	"time"

	"barbershop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func appointmentDoc(t *testing.T, a models.Appointment) bson.D {
	t.Helper()
	raw, err := bson.Marshal(a)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("insert assigns id", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		a := &models.Appointment{CustomerName: "Ana", Date: day}
		require.NoError(mt, s.Insert(context.Background(), a))
		assert.NotEmpty(mt, a.ID)
	})

	mt.Run("find by date range", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		doc := appointmentDoc(mt.T, models.Appointment{ID: "a1", CustomerName: "Ana", Date: day, Time: "10:00"})
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, doc))

		got, err := s.FindByDateRange(context.Background(), day, day.AddDate(0, 0, 1))
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "a1", got[0].ID)
		assert.True(mt, got[0].Date.Equal(day))
	})

	mt.Run("update returns document after", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		doc := appointmentDoc(mt.T, models.Appointment{ID: "a1", CustomerName: "Ana", Artist: "Tiago", Date: day})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: doc}))

		artist := "Tiago"
		got, err := s.UpdateByID(context.Background(), "a1", models.AppointmentPatch{Artist: &artist})
		require.NoError(mt, err)
		assert.Equal(mt, "Tiago", got.Artist)
		assert.Equal(mt, "Ana", got.CustomerName)
	})

	mt.Run("update missing is not found", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		artist := "Tiago"
		_, err := s.UpdateByID(context.Background(), "missing", models.AppointmentPatch{Artist: &artist})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete by id reports existence", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		deleted, err := s.DeleteByID(context.Background(), "a1")
		require.NoError(mt, err)
		assert.True(mt, deleted)

		deleted, err = s.DeleteByID(context.Background(), "a1")
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})

	mt.Run("delete before counts", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 4}))

		n, err := s.DeleteBefore(context.Background(), day)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)
	})

	mt.Run("command error propagates", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad filter",
			Name:    "BadValue",
		}))

		_, err := s.DeleteBefore(context.Background(), day)
		assert.Error(mt, err)
	})
}
