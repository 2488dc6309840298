package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategoryMap(t *testing.T) {
	m := DefaultCategoryMap()

	require.Equal(t, 7, m.Len())

	name, ok := m.Lookup("shoes")
	assert.True(t, ok)
	assert.Equal(t, "Shoes", name)

	name, ok = m.Lookup("beauty-self-care-items")
	assert.True(t, ok)
	assert.Equal(t, "Beauty & Self Care Items", name)

	for _, slug := range []string{"", "all", "girly", "SHOES"} {
		_, ok := m.Lookup(slug)
		assert.False(t, ok, slug)
	}

	assert.Equal(t, "cute-lighting", m.SlugFor("Cute Lighting"))
	assert.Equal(t, "dorm-essentials", m.SlugFor("Dorm Essentials"))

	cats := m.Categories()
	assert.Equal(t, "beauty-self-care-items", cats[0].Slug)
	assert.Equal(t, "cute-lighting", cats[len(cats)-1].Slug)
}

func TestParseCategoryMap(t *testing.T) {
	m, err := ParseCategoryMap([]byte(`
categories:
  - name: Dorm Essentials
    icon: Package
  - slug: tech
    name: Tech & Accessories
`))
	require.NoError(t, err)

	name, ok := m.Lookup("dorm-essentials")
	assert.True(t, ok)
	assert.Equal(t, "Dorm Essentials", name)

	name, ok = m.Lookup("tech")
	assert.True(t, ok)
	assert.Equal(t, "Tech & Accessories", name)
}

func TestParseCategoryMap_Rejects(t *testing.T) {
	_, err := ParseCategoryMap([]byte("categories:\n  - slug: a\n    name: A\n  - slug: a\n    name: B\n"))
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)

	_, err = ParseCategoryMap([]byte("categories:\n  - slug: all\n    name: All Finds\n"))
	assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)

	_, err = ParseCategoryMap([]byte("categories:\n  - slug: x\n"))
	assert.ErrorIs(t, err, e.ErrCategoryRequired)

	_, err = ParseCategoryMap([]byte("categories: [oops"))
	assert.Error(t, err)
}

func TestLoadCategoryMap_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - slug: bags\n    name: Bags\n"), 0o600))

	m, err := LoadCategoryMap(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	_, err = LoadCategoryMap(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_PostgresDefaults(t *testing.T) {
	t.Setenv("POSTGRES_USER", "pink")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "pinkcart")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CATEGORIES_FILE", "")
	t.Setenv("OUTBOX_RECLAIM_AFTER", "")

	c, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, c.Storefront.StoreDriver)
	assert.Equal(t, "254794269051", c.Storefront.OperatorPhone)
	assert.Equal(t, "KSh", c.Storefront.Currency)
	assert.Equal(t, "8080", c.Http.Port)
	assert.Equal(t, int32(10), c.Db.MaxConns)
	assert.Equal(t, "db/migrations", c.Db.MigrationsDir)
	assert.Nil(t, c.Mongo)
	assert.False(t, c.Kafka.Enabled)
	assert.Equal(t, 5*time.Second, c.Outbox.PollInterval)
	assert.Equal(t, time.Minute, c.Outbox.ReclaimAfter)
	assert.Equal(t, "http://minio:9000", c.Minio.PublicURL)
}

func TestLoad_Mongo(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MongoDB")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CATEGORIES_FILE", "")

	c, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMongo, c.Storefront.StoreDriver)
	assert.Nil(t, c.Db)
	assert.Equal(t, "mongodb://db:27017", c.Mongo.URI)
	assert.Equal(t, "pinkcart", c.Mongo.Database)
	assert.True(t, c.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("CATEGORIES_FILE", "")

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := Load(logger.NewNop())
		assert.ErrorIs(t, err, e.ErrUnknownStoreDriver)
	})

	t.Run("missing postgres user", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "postgres")
		t.Setenv("POSTGRES_USER", "")
		_, err := Load(logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("non-positive reclaim timeout", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongodb")
		t.Setenv("OUTBOX_RECLAIM_AFTER", "0s")
		_, err := Load(logger.NewNop())
		assert.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongodb")
		t.Setenv("HTTP_READ_TIMEOUT", "soon")
		_, err := Load(logger.NewNop())
		assert.Error(t, err)
	})
}
