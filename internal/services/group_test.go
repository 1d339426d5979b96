package services

import (
	"testing"

	"github.com/racs-hpc/hpcadmin-server/internal/models"
	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/response"
)

func TestAddGroup_CreatesAndAttaches(t *testing.T) {
	db := setupTestDB(t)
	pirgs := NewPirgService(db)
	marka := mustCreateUser(t, db, "marka")
	lcrown := mustCreateUser(t, db, "lcrown")

	pirg, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "racs"},
		OwnerID:  marka.ID,
		UserIDs:  []uint{lcrown.ID, marka.ID},
		AdminIDs: []uint{marka.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	group, err := pirgs.AddGroup(pirg.ID, &schemas.PirgAddGroup{
		Name:    "compute",
		UserIDs: []uint{lcrown.ID},
	})
	if err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}

	out := schemas.NewGroup(group)
	if out.Name != "compute" {
		t.Errorf("group name = %q, expected compute", out.Name)
	}
	if out.Pirg.ID != pirg.ID || out.Pirg.Name != "racs" {
		t.Errorf("group pirg signature = %+v, expected racs", out.Pirg)
	}
	if len(out.Users) != 1 || out.Users[0].Username != "lcrown" {
		t.Errorf("group users = %+v, expected lcrown signature", out.Users)
	}

	// the group shows up on the pirg
	pirg, err = pirgs.GetByID(pirg.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(pirg.Groups) != 1 || pirg.Groups[0].Name != "compute" {
		t.Errorf("pirg groups = %+v, expected compute", pirg.Groups)
	}
}

func TestAddGroup_MissingPirg(t *testing.T) {
	db := setupTestDB(t)
	pirgs := NewPirgService(db)

	_, err := pirgs.AddGroup(9999, &schemas.PirgAddGroup{Name: "compute"})
	if !response.IsNotFound(err) {
		t.Fatalf("AddGroup() on missing pirg expected not found, got %v", err)
	}

	// no group persisted
	var count int64
	db.Model(&models.Group{}).Count(&count)
	if count != 0 {
		t.Errorf("no group should exist after failed add, found %d rows", count)
	}
}

func TestAddGroup_DanglingUserID(t *testing.T) {
	db := setupTestDB(t)
	pirgs := NewPirgService(db)
	marka := mustCreateUser(t, db, "marka")

	pirg, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "racs"},
		OwnerID:  marka.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = pirgs.AddGroup(pirg.ID, &schemas.PirgAddGroup{
		Name:    "compute",
		UserIDs: []uint{9999},
	})
	if err == nil {
		t.Fatal("AddGroup() should fail for a dangling user_id")
	}
	var appErr *response.AppError
	if !asAppError(err, &appErr) || appErr.HTTPStatus != 400 {
		t.Errorf("expected validation error, got %v", err)
	}

	var count int64
	db.Model(&models.Group{}).Count(&count)
	if count != 0 {
		t.Errorf("no group should exist after failed add, found %d rows", count)
	}
}

func TestAddGroup_DuplicateNameWithinPirg(t *testing.T) {
	db := setupTestDB(t)
	pirgs := NewPirgService(db)
	marka := mustCreateUser(t, db, "marka")
	craigs := mustCreateUser(t, db, "craigs")

	racs, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "racs"},
		OwnerID:  marka.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	systems, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "systems"},
		OwnerID:  craigs.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := pirgs.AddGroup(racs.ID, &schemas.PirgAddGroup{Name: "compute"}); err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}

	// same name within the same pirg conflicts
	_, err = pirgs.AddGroup(racs.ID, &schemas.PirgAddGroup{Name: "compute"})
	var appErr *response.AppError
	if !asAppError(err, &appErr) || appErr.HTTPStatus != 409 {
		t.Errorf("expected conflict for duplicate group name in pirg, got %v", err)
	}

	// same name under a different pirg is fine
	if _, err := pirgs.AddGroup(systems.ID, &schemas.PirgAddGroup{Name: "compute"}); err != nil {
		t.Errorf("AddGroup() under a different pirg should succeed, got %v", err)
	}
}

func TestGetGroupByName(t *testing.T) {
	db := setupTestDB(t)
	pirgs := NewPirgService(db)
	marka := mustCreateUser(t, db, "marka")

	pirg, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "racs"},
		OwnerID:  marka.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := pirgs.AddGroup(pirg.ID, &schemas.PirgAddGroup{Name: "compute"}); err != nil {
		t.Fatalf("AddGroup() error = %v", err)
	}

	group, err := pirgs.GetGroupByName(pirg.ID, "compute")
	if err != nil {
		t.Fatalf("GetGroupByName() error = %v", err)
	}
	if group.Name != "compute" || group.PirgID != pirg.ID {
		t.Errorf("GetGroupByName() = %+v", group)
	}

	if _, err := pirgs.GetGroupByName(pirg.ID, "storage"); !response.IsNotFound(err) {
		t.Errorf("expected not found for unknown group name, got %v", err)
	}
	if _, err := pirgs.GetGroupByName(9999, "compute"); !response.IsNotFound(err) {
		t.Errorf("expected not found for unknown pirg, got %v", err)
	}
}

func TestGroupService_CreateDelegates(t *testing.T) {
	db := setupTestDB(t)
	groups := NewGroupService(db)
	pirgs := NewPirgService(db)
	marka := mustCreateUser(t, db, "marka")

	pirg, err := pirgs.Create(&schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: "racs"},
		OwnerID:  marka.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	group, err := groups.Create(&schemas.GroupCreate{
		GroupBase: schemas.GroupBase{Name: "compute"},
		PirgID:    pirg.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := groups.GetByID(group.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "compute" || got.Pirg.Name != "racs" {
		t.Errorf("GetByID() = %+v", got)
	}
}
