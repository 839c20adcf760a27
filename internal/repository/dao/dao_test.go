package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

// TestMain spins up a throwaway Postgres container for the DAO tests. When no
// Docker daemon is reachable the whole package is skipped.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping DAO tests, could not construct docker pool: %v", err)
		os.Exit(0)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping DAO tests, could not connect to docker: %v", err)
		os.Exit(0)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=checkin_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=postgres dbname=checkin_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db

		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()

	err := testDB.Exec("TRUNCATE event_entries, events, users RESTART IDENTITY CASCADE").Error
	require.NoError(t, err)
}

func seedUser(t *testing.T, email, code string) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Name:      "Test User",
		Email:     email,
		Password:  "hashed",
		EntryCode: code,
	})
	require.NoError(t, err)

	return user
}

func seedEvent(t *testing.T, name string, start time.Time, active bool) Event {
	t.Helper()

	event, err := NewEventDAO(testDB).Insert(context.Background(), Event{
		Name:      name,
		StartDate: start,
		IsActive:  active,
	})
	require.NoError(t, err)

	return event
}

func TestUserDAOUniqueViolations(t *testing.T) {
	resetTables(t)

	d := NewUserDAO(testDB)

	seedUser(t, "alice@example.com", "AB12CD34")

	_, err := d.Insert(context.Background(), User{
		Name:      "Dup Email",
		Email:     "alice@example.com",
		Password:  "hashed",
		EntryCode: "ZZ99ZZ99",
	})
	require.ErrorIs(t, err, ErrUserEmailExists)

	_, err = d.Insert(context.Background(), User{
		Name:      "Dup Code",
		Email:     "bob@example.com",
		Password:  "hashed",
		EntryCode: "AB12CD34",
	})
	require.ErrorIs(t, err, ErrUserEntryCodeExists)
}

func TestEntryDAOSameDayUniqueViolation(t *testing.T) {
	resetTables(t)

	d := NewEntryDAO(testDB)
	user := seedUser(t, "alice@example.com", "AB12CD34")
	event := seedEvent(t, "Open Day", time.Now(), true)

	now := time.Now()

	first, err := d.Insert(context.Background(), EventEntry{
		EventID:     event.ID,
		UserID:      user.ID,
		EntryTime:   now,
		EntryMethod: "qrcode",
	})
	require.NoError(t, err)

	_, err = d.Insert(context.Background(), EventEntry{
		EventID:     event.ID,
		UserID:      user.ID,
		EntryTime:   now.Add(time.Hour),
		EntryMethod: "nfc",
	})
	require.ErrorIs(t, err, ErrEntryExistsForDay)

	// A different calendar day is a fresh slot.
	_, err = d.Insert(context.Background(), EventEntry{
		EventID:     event.ID,
		UserID:      user.ID,
		EntryTime:   now.AddDate(0, 0, 1),
		EntryMethod: "qrcode",
	})
	require.NoError(t, err)

	found, err := d.FindForDay(context.Background(), event.ID, user.ID, now)
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)
	require.Equal(t, user.ID, found.User.ID)
	require.Equal(t, event.ID, found.Event.ID)
}

func TestEntryDAOFindByEventIDOrder(t *testing.T) {
	resetTables(t)

	d := NewEntryDAO(testDB)
	alice := seedUser(t, "alice@example.com", "AB12CD34")
	bob := seedUser(t, "bob@example.com", "EF56GH78")
	event := seedEvent(t, "Open Day", time.Now(), true)

	earlier := time.Now().Add(-time.Hour)
	later := time.Now()

	_, err := d.Insert(context.Background(), EventEntry{
		EventID: event.ID, UserID: alice.ID, EntryTime: earlier, EntryMethod: "manual",
	})
	require.NoError(t, err)
	_, err = d.Insert(context.Background(), EventEntry{
		EventID: event.ID, UserID: bob.ID, EntryTime: later, EntryMethod: "manual",
	})
	require.NoError(t, err)

	entries, err := d.FindByEventID(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, bob.ID, entries[0].UserID)
	require.Equal(t, "bob@example.com", entries[0].User.Email)
}

func TestEntryDAOFindAllOrder(t *testing.T) {
	resetTables(t)

	d := NewEntryDAO(testDB)
	alice := seedUser(t, "alice@example.com", "AB12CD34")
	bob := seedUser(t, "bob@example.com", "EF56GH78")
	openDay := seedEvent(t, "Open Day", time.Now(), true)
	gala := seedEvent(t, "Gala", time.Now().AddDate(0, 0, -7), false)

	oldest := time.Now().Add(-2 * time.Hour)
	middle := time.Now().Add(-time.Hour)
	newest := time.Now()

	// Inserted out of order on purpose.
	_, err := d.Insert(context.Background(), EventEntry{
		EventID: openDay.ID, UserID: alice.ID, EntryTime: middle, EntryMethod: "qrcode",
	})
	require.NoError(t, err)
	_, err = d.Insert(context.Background(), EventEntry{
		EventID: gala.ID, UserID: bob.ID, EntryTime: newest, EntryMethod: "nfc",
	})
	require.NoError(t, err)
	_, err = d.Insert(context.Background(), EventEntry{
		EventID: gala.ID, UserID: alice.ID, EntryTime: oldest, EntryMethod: "manual",
	})
	require.NoError(t, err)

	entries, err := d.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, bob.ID, entries[0].UserID)
	require.Equal(t, alice.ID, entries[1].UserID)
	require.Equal(t, openDay.ID, entries[1].EventID)
	require.Equal(t, alice.ID, entries[2].UserID)

	// Users and events ride along on the listing.
	require.Equal(t, "bob@example.com", entries[0].User.Email)
	require.Equal(t, "Gala", entries[0].Event.Name)
}

func TestEventDAOSingleActive(t *testing.T) {
	resetTables(t)

	d := NewEventDAO(testDB)

	first := seedEvent(t, "First", time.Now().AddDate(0, -1, 0), true)
	second := seedEvent(t, "Second", time.Now(), true)

	// Inserting the second active event deactivated the first.
	got, err := d.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)

	active, err := d.FindActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, second.ID, active.ID)

	// Re-activating via update flips them back.
	first.IsActive = true
	_, err = d.Update(context.Background(), first)
	require.NoError(t, err)

	active, err = d.FindActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.ID, active.ID)

	got, err = d.FindByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestEventDAOFindActiveNone(t *testing.T) {
	resetTables(t)

	d := NewEventDAO(testDB)

	seedEvent(t, "Dormant", time.Now(), false)

	_, err := d.FindActive(context.Background())
	require.ErrorIs(t, err, ErrNoActiveEvent)
}

func TestUserDAOTouchEntryTime(t *testing.T) {
	resetTables(t)

	d := NewUserDAO(testDB)
	user := seedUser(t, "alice@example.com", "AB12CD34")
	require.Nil(t, user.EntryTime)

	at := time.Now()
	updated, err := d.TouchEntryTime(context.Background(), user.ID, at)
	require.NoError(t, err)
	require.NotNil(t, updated.EntryTime)
	require.WithinDuration(t, at, *updated.EntryTime, time.Second)

	_, err = d.TouchEntryTime(context.Background(), 9999, at)
	require.ErrorIs(t, err, ErrUserNotFound)
}
