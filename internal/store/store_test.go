package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"kitchenequip/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	st := New(db)
	require.NoError(t, st.AutoMigrate())
	return st
}

func registerUser(t *testing.T, st *Store, username, email, password string) *models.User {
	t.Helper()
	u := &models.User{
		UserType:  models.RoleAdmin,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		UserName:  username,
	}
	require.NoError(t, st.Register(context.Background(), u, password))
	return u
}

func createSite(t *testing.T, st *Store, ownerID uint, desc string) *models.Site {
	t.Helper()
	s := &models.Site{UserID: ownerID, Description: desc, Active: true}
	require.NoError(t, st.CreateSite(context.Background(), s))
	return s
}

func createEquipment(t *testing.T, st *Store, ownerID uint, serial string) *models.Equipment {
	t.Helper()
	e := &models.Equipment{
		SerialNumber: serial,
		Description:  "equipment " + serial,
		Condition:    models.ConditionWorking,
		UserID:       ownerID,
	}
	require.NoError(t, st.CreateEquipment(context.Background(), e))
	return e
}

func countAssignments(t *testing.T, st *Store) int64 {
	t.Helper()
	var n int64
	require.NoError(t, st.db.Model(&models.RegisteredEquipment{}).Count(&n).Error)
	return n
}

func TestRegisterAndAuthenticate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"), "password must be bcrypt-hashed")
	assert.NotContains(t, u.PasswordHash, "secret1")

	got, err := st.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// username lookup is case-insensitive
	got, err = st.Authenticate(ctx, "ALICE", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = st.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateMalformedHashIsMismatch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "bob", "bob@example.com", "secret1")
	require.NoError(t, st.db.Model(u).Update("password_hash", "not-a-bcrypt-hash").Error)

	_, err := st.Authenticate(ctx, "bob", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateIdentityCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	registerUser(t, st, "alice", "alice@example.com", "secret1")

	dup := &models.User{
		UserType: models.RoleAdmin, FirstName: "A", LastName: "B",
		Email: "other@example.com", UserName: "Alice",
	}
	assert.ErrorIs(t, st.Register(ctx, dup, "secret2"), ErrDuplicateIdentity)

	dup = &models.User{
		UserType: models.RoleAdmin, FirstName: "A", LastName: "B",
		Email: "ALICE@Example.COM", UserName: "someone-else",
	}
	assert.ErrorIs(t, st.Register(ctx, dup, "secret2"), ErrDuplicateIdentity)
}

func TestAvailabilityChecks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	registerUser(t, st, "alice", "alice@example.com", "secret1")

	ok, err := st.UsernameAvailable(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.UsernameAvailable(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.EmailAvailable(ctx, "Alice@Example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = st.EmailAvailable(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDuplicateSerialRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	createEquipment(t, st, u.ID, "SN001")

	dup := &models.Equipment{
		SerialNumber: "SN001", Description: "duplicate",
		Condition: models.ConditionWorking, UserID: u.ID,
	}
	assert.ErrorIs(t, st.CreateEquipment(ctx, dup), ErrDuplicateSerial)
}

func TestSecondAssignmentRejected(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	s1 := createSite(t, st, u.ID, "Kitchen1")
	s2 := createSite(t, st, u.ID, "Kitchen2")
	eq := createEquipment(t, st, u.ID, "SN001")

	first, err := st.Assign(ctx, u.ID, eq.ID, s1.ID)
	require.NoError(t, err)

	_, err = st.Assign(ctx, u.ID, eq.ID, s2.ID)
	assert.ErrorIs(t, err, ErrEquipmentAssigned)

	// the same pair again is also a conflict
	_, err = st.Assign(ctx, u.ID, eq.ID, s1.ID)
	assert.ErrorIs(t, err, ErrEquipmentAssigned)

	// pre-existing assignment unchanged
	site, err := st.CurrentSite(ctx, eq.ID)
	require.NoError(t, err)
	require.NotNil(t, site)
	assert.Equal(t, s1.ID, site.ID)

	var row models.RegisteredEquipment
	require.NoError(t, st.db.First(&row, "equipment_id = ?", eq.ID).Error)
	assert.Equal(t, first.ID, row.ID)
	assert.Equal(t, s1.ID, row.SiteID)
}

func TestDeleteSiteRemovesOnlyItsAssignments(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	s1 := createSite(t, st, u.ID, "Kitchen1")
	s2 := createSite(t, st, u.ID, "Kitchen2")

	e1 := createEquipment(t, st, u.ID, "SN001")
	e2 := createEquipment(t, st, u.ID, "SN002")
	e3 := createEquipment(t, st, u.ID, "SN003")

	_, err := st.Assign(ctx, u.ID, e1.ID, s1.ID)
	require.NoError(t, err)
	_, err = st.Assign(ctx, u.ID, e2.ID, s1.ID)
	require.NoError(t, err)
	_, err = st.Assign(ctx, u.ID, e3.ID, s2.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteSite(ctx, u.ID, s1.ID))

	assert.EqualValues(t, 1, countAssignments(t, st))
	site, err := st.CurrentSite(ctx, e3.ID)
	require.NoError(t, err)
	require.NotNil(t, site)
	assert.Equal(t, s2.ID, site.ID)

	// the unassigned equipment still exists
	for _, id := range []uint{e1.ID, e2.ID} {
		_, err := st.GetEquipment(ctx, u.ID, id)
		assert.NoError(t, err)
	}
}

func TestDeleteSiteScenario(t *testing.T) {
	// register alice; create Kitchen1; create SN001; assign; delete site.
	st := newTestStore(t)
	ctx := context.Background()

	alice := registerUser(t, st, "alice", "alice@example.com", "secret1")
	kitchen := createSite(t, st, alice.ID, "Kitchen1")
	eq := createEquipment(t, st, alice.ID, "SN001")

	_, err := st.Assign(ctx, alice.ID, eq.ID, kitchen.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteSite(ctx, alice.ID, kitchen.ID))

	site, err := st.CurrentSite(ctx, eq.ID)
	require.NoError(t, err)
	assert.Nil(t, site)

	got, err := st.GetEquipment(ctx, alice.ID, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, "SN001", got.SerialNumber)
}

func TestDeleteEquipmentRemovesItsAssignment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	site := createSite(t, st, u.ID, "Kitchen1")
	e1 := createEquipment(t, st, u.ID, "SN001")
	e2 := createEquipment(t, st, u.ID, "SN002")

	_, err := st.Assign(ctx, u.ID, e1.ID, site.ID)
	require.NoError(t, err)
	_, err = st.Assign(ctx, u.ID, e2.ID, site.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteEquipment(ctx, u.ID, e1.ID))

	assert.EqualValues(t, 1, countAssignments(t, st))
	_, err = st.GetEquipment(ctx, u.ID, e1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.GetSite(ctx, u.ID, site.ID)
	assert.NoError(t, err)
}

func TestDeleteUserCascades(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := registerUser(t, st, "alice", "alice@example.com", "secret1")
	bob := registerUser(t, st, "bob", "bob@example.com", "secret2")

	aliceSite := createSite(t, st, alice.ID, "Alice Kitchen")
	bobSite := createSite(t, st, bob.ID, "Bob Kitchen")
	aliceEq := createEquipment(t, st, alice.ID, "SN-A1")
	bobEq := createEquipment(t, st, bob.ID, "SN-B1")

	_, err := st.Assign(ctx, alice.ID, aliceEq.ID, aliceSite.ID)
	require.NoError(t, err)
	_, err = st.Assign(ctx, bob.ID, bobEq.ID, bobSite.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(ctx, alice.ID))

	_, err = st.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	sites, err := st.ListSites(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, sites)
	eq, err := st.ListEquipment(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, eq)

	// bob's data untouched
	assert.EqualValues(t, 1, countAssignments(t, st))
	site, err := st.CurrentSite(ctx, bobEq.ID)
	require.NoError(t, err)
	require.NotNil(t, site)
	assert.Equal(t, bobSite.ID, site.ID)
}

func TestDeleteUserNotFound(t *testing.T) {
	st := newTestStore(t)
	assert.ErrorIs(t, st.DeleteUser(context.Background(), 9999), ErrNotFound)
}

func TestUnassign(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	site := createSite(t, st, u.ID, "Kitchen1")
	eq := createEquipment(t, st, u.ID, "SN001")

	_, err := st.Assign(ctx, u.ID, eq.ID, site.ID)
	require.NoError(t, err)

	require.NoError(t, st.Unassign(ctx, u.ID, eq.ID, site.ID))
	assert.EqualValues(t, 0, countAssignments(t, st))

	assert.ErrorIs(t, st.Unassign(ctx, u.ID, eq.ID, site.ID), ErrNotFound)
}

func TestAssignRequiresOwnedRecords(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	alice := registerUser(t, st, "alice", "alice@example.com", "secret1")
	bob := registerUser(t, st, "bob", "bob@example.com", "secret2")
	bobSite := createSite(t, st, bob.ID, "Bob Kitchen")
	aliceEq := createEquipment(t, st, alice.ID, "SN001")

	// alice cannot assign to bob's site
	_, err := st.Assign(ctx, alice.ID, aliceEq.ID, bobSite.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// bob cannot assign alice's equipment
	_, err = st.Assign(ctx, bob.ID, aliceEq.ID, bobSite.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnassignedAndSiteEquipment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	site := createSite(t, st, u.ID, "Kitchen1")
	e1 := createEquipment(t, st, u.ID, "SN001")
	e2 := createEquipment(t, st, u.ID, "SN002")

	_, err := st.Assign(ctx, u.ID, e1.ID, site.ID)
	require.NoError(t, err)

	unassigned, err := st.UnassignedEquipment(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, e2.ID, unassigned[0].ID)

	assigned, err := st.SiteEquipment(ctx, u.ID, site.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, e1.ID, assigned[0].ID)
}

func TestOwnerOverview(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	site := createSite(t, st, u.ID, "Kitchen1")
	working := createEquipment(t, st, u.ID, "SN001")

	broken := &models.Equipment{
		SerialNumber: "SN002", Description: "fryer",
		Condition: models.ConditionNotWorking, UserID: u.ID,
	}
	require.NoError(t, st.CreateEquipment(ctx, broken))
	spare := createEquipment(t, st, u.ID, "SN003")

	_, err := st.Assign(ctx, u.ID, working.ID, site.ID)
	require.NoError(t, err)
	_, err = st.Assign(ctx, u.ID, broken.ID, site.ID)
	require.NoError(t, err)

	ov, err := st.OwnerOverview(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, ov.Sites, 1)
	assert.EqualValues(t, 2, ov.Sites[0].EquipmentCount)
	assert.EqualValues(t, 1, ov.Sites[0].WorkingCount)
	require.Len(t, ov.Unassigned, 1)
	assert.Equal(t, spare.ID, ov.Unassigned[0].ID)
}

func TestUpdateUserDuplicateIdentity(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	registerUser(t, st, "alice", "alice@example.com", "secret1")
	bob := registerUser(t, st, "bob", "bob@example.com", "secret2")

	bob.UserName = "Alice"
	assert.ErrorIs(t, st.UpdateUser(ctx, bob), ErrDuplicateIdentity)
}

func TestUpdateEquipmentDuplicateSerial(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := registerUser(t, st, "alice", "alice@example.com", "secret1")
	createEquipment(t, st, u.ID, "SN001")
	e2 := createEquipment(t, st, u.ID, "SN002")

	e2.SerialNumber = "SN001"
	assert.ErrorIs(t, st.UpdateEquipment(ctx, e2), ErrDuplicateSerial)

	// keeping the same serial on save is fine
	e2.SerialNumber = "SN002"
	e2.Description = "renamed"
	assert.NoError(t, st.UpdateEquipment(ctx, e2))
}
