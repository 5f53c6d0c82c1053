package service

import (
	"testing"

	"github.com/keiichiro05/LO-converter/internal/config"
	"github.com/keiichiro05/LO-converter/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildCrossWalk(t *testing.T) {
	master := testMaster(
		map[string]string{
			models.MasterColGroup: "MT", models.MasterColGroupToBe: "MODERN TRADE",
			models.MasterColSKU: "COLA 1.5L", models.MasterColSKUToBe: "COLA PREMIUM 1.5L",
			models.MasterColShipTo: "8000123", models.MasterColCustName: "ALFA SUPERMARKET",
		},
		map[string]string{
			models.MasterColGroup: "GT", models.MasterColGroupToBe: "GENERAL TRADE",
		},
	)

	cw := BuildCrossWalk(master, config.DefaultRules())

	assert.Equal(t, map[string]string{
		"MT": "MODERN TRADE",
		"GT": "GENERAL TRADE",
	}, cw.GroupAccount)
	assert.Equal(t, map[string]string{"COLA 1.5L": "COLA PREMIUM 1.5L"}, cw.SKU)
	assert.Equal(t, map[string]string{"8000123": "ALFA SUPERMARKET"}, cw.Customer)
}

func TestBuildCrossWalkLastDuplicateWins(t *testing.T) {
	master := testMaster(
		map[string]string{models.MasterColGroup: "MT", models.MasterColGroupToBe: "FIRST"},
		map[string]string{models.MasterColGroup: "MT", models.MasterColGroupToBe: "SECOND"},
	)

	cw := BuildCrossWalk(master, config.DefaultRules())

	assert.Equal(t, "SECOND", cw.GroupAccount["MT"])
}

func TestBuildCrossWalkSkipsBlanksPerMap(t *testing.T) {
	// A blank SKU pair must not stop the same row from feeding the other maps.
	master := testMaster(map[string]string{
		models.MasterColGroup: " MT ", models.MasterColGroupToBe: " MODERN TRADE ",
		models.MasterColSKU: "", models.MasterColSKUToBe: "ORPHAN",
		models.MasterColShipTo: "8000123", models.MasterColCustName: "  ",
	})

	cw := BuildCrossWalk(master, config.DefaultRules())

	assert.Equal(t, "MODERN TRADE", cw.GroupAccount["MT"])
	assert.Empty(t, cw.SKU)
	assert.Empty(t, cw.Customer)
}

func TestBuildCrossWalkFoldsCustomerKeys(t *testing.T) {
	master := testMaster(map[string]string{
		models.MasterColShipTo:   "  Alfa-Bekasi  ",
		models.MasterColCustName: "ALFA SUPERMARKET",
	})

	cw := BuildCrossWalk(master, config.DefaultRules())

	assert.Equal(t, "ALFA SUPERMARKET", cw.Customer["alfa-bekasi"])
}

func TestBuildCrossWalkWithoutNameColumn(t *testing.T) {
	master := &models.Table{
		Columns: []string{
			models.MasterColGroup, models.MasterColGroupToBe,
			models.MasterColSKU, models.MasterColSKUToBe,
			models.MasterColShipTo,
		},
		Rows: []map[string]string{{
			models.MasterColGroup: "MT", models.MasterColGroupToBe: "MODERN TRADE",
			models.MasterColShipTo: "8000123",
		}},
	}

	cw := BuildCrossWalk(master, config.DefaultRules())

	assert.Equal(t, "MODERN TRADE", cw.GroupAccount["MT"])
	assert.Empty(t, cw.Customer)
}
