package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/aretw0/quire/pkg/core"
)

func TestBackend(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("read existing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "notes.json"},
			{Key: "data", Value: []byte(`[{"title":"a"}]`)},
		}))

		data, err := New(mt.Coll, nil).Read(context.Background(), "notes.json")
		require.NoError(mt, err)
		assert.Equal(mt, `[{"title":"a"}]`, string(data))
	})

	mt.Run("read missing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := New(mt.Coll, nil).Read(context.Background(), "notes.json")
		assert.ErrorIs(mt, err, core.ErrNotFound)
	})

	mt.Run("read failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
		}))

		_, err := New(mt.Coll, nil).Read(context.Background(), "notes.json")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, core.ErrNotFound)
	})

	mt.Run("write", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, New(mt.Coll, nil).Write(context.Background(), "notes.json", []byte(`[]`)))
	})

	mt.Run("write failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key",
		}))
		assert.Error(mt, New(mt.Coll, nil).Write(context.Background(), "notes.json", []byte(`[]`)))
	})
}
