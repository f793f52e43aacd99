package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontandrew/parking/internal/domain"
)

var start = time.UnixMilli(1709546400000) // 2024-03-04 10:00 UTC

func sampleDocument() *Document {
	return &Document{
		Name:      "Cardiff Central",
		Employees: []EmployeeRecord{{ID: 0, Name: "Anna"}, {ID: 3, Name: "Boris"}},
		ParkingZones: []ZoneRecord{
			{
				ID:               "A",
				ParkingSpaces:    []SpaceRecord{{ID: "A1"}, {ID: "A2"}},
				Price:            2.5,
				AcceptedVehicles: []string{"STANDARD", "HIGHER"},
			},
			{
				ID:               "C",
				ParkingSpaces:    []SpaceRecord{{ID: "C1"}},
				Price:            10,
				AcceptedVehicles: []string{"COACH"},
			},
		},
		Vehicles: []VehicleRecord{
			{LicensePlate: "AB12CDE", ParkingSpace: "A2", Type: "STANDARD", Height: 1.5, Length: 4.2, ReceiptID: 0},
			{LicensePlate: "BUS1", ParkingSpace: "C1", Type: "COACH", Height: 3.5, Length: 12, ReceiptID: 1},
		},
		ParkingReceipts: []ReceiptRecord{
			{ID: 0, DateStart: start.UnixMilli(), IsDisabled: true},
			{ID: 1, DateStart: start.Add(time.Hour).UnixMilli()},
		},
		ExitTokens: []ExitTokenRecord{{ID: 4321, Date: start.UnixMilli()}},
	}
}

func TestDecode_LinksVehiclesAndReceipts(t *testing.T) {
	state, err := Decode(sampleDocument())
	require.NoError(t, err)

	assert.Equal(t, "Cardiff Central", state.Name)
	require.Len(t, state.Employees, 2)
	assert.Equal(t, domain.PoolIdle, state.Employees[1].Pool)
	require.Len(t, state.Zones, 2)
	require.Len(t, state.Tokens, 1)
	assert.Equal(t, 4321, state.Tokens[0].ID)

	a := state.Zones[0]
	assert.True(t, a.Spaces[0].IsFree())
	v := a.Spaces[1].Vehicle
	require.NotNil(t, v)
	assert.Equal(t, "AB12CDE", v.LicensePlate)
	require.NotNil(t, v.Receipt)
	assert.True(t, v.Receipt.Disabled)
	assert.Equal(t, start.UnixMilli(), v.Receipt.StartDate.UnixMilli())
	assert.False(t, v.Receipt.IsClosed())

	rate, err := v.Receipt.Rate()
	require.NoError(t, err)
	assert.Equal(t, 2.5, rate)

	bus := state.Zones[1].Spaces[0].Vehicle
	require.NotNil(t, bus)
	assert.Equal(t, domain.CategoryCoach, bus.Category)
	assert.Equal(t, 1, bus.Receipt.ID)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	state, err := Decode(doc)
	require.NoError(t, err)

	// Занятый сотрудник не сохраняется
	state.Employees = append(state.Employees, &domain.Employee{ID: 7, Name: "Vera", Pool: domain.PoolAssigned})

	encoded := Encode(state)
	assert.Equal(t, doc.Name, encoded.Name)
	assert.Equal(t, doc.Employees, encoded.Employees)
	assert.Equal(t, doc.ParkingZones, encoded.ParkingZones)
	assert.ElementsMatch(t, doc.Vehicles, encoded.Vehicles)
	assert.ElementsMatch(t, doc.ParkingReceipts, encoded.ParkingReceipts)
	assert.Equal(t, doc.ExitTokens, encoded.ExitTokens)
}

func TestDocument_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, key := range []string{"name", "employees", "parkingZones", "vehicles", "parkingReceipts", "exitTokens"} {
		assert.Contains(t, generic, key)
	}

	zone := generic["parkingZones"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"id", "parkingSpaces", "price", "acceptedVehicles"} {
		assert.Contains(t, zone, key)
	}
	vehicle := generic["vehicles"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"licensePlate", "parkingSpace", "type", "height", "length", "receiptId"} {
		assert.Contains(t, vehicle, key)
	}
	receipt := generic["parkingReceipts"].([]interface{})[0].(map[string]interface{})
	for _, key := range []string{"id", "dateStart", "isDisabled"} {
		assert.Contains(t, receipt, key)
	}
	token := generic["exitTokens"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, token, "date")
}

func TestEmpty_MarshalsToArrays(t *testing.T) {
	raw, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"","employees":[],"parkingZones":[],"vehicles":[],"parkingReceipts":[],"exitTokens":[]}`,
		string(raw))

	state, err := Decode(Empty())
	require.NoError(t, err)
	assert.Empty(t, state.Zones)
}

func TestDecode_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Document)
	}{
		{name: "квитанция без автомобиля", mutate: func(d *Document) {
			d.ParkingReceipts = append(d.ParkingReceipts, ReceiptRecord{ID: 9, DateStart: start.UnixMilli()})
		}},
		{name: "автомобиль без квитанции", mutate: func(d *Document) {
			d.ParkingReceipts = d.ParkingReceipts[:1]
		}},
		{name: "неизвестное место", mutate: func(d *Document) { d.Vehicles[0].ParkingSpace = "Z9" }},
		{name: "место занято дважды", mutate: func(d *Document) {
			d.Vehicles = append(d.Vehicles, VehicleRecord{LicensePlate: "X1", ParkingSpace: "A2", Type: "STANDARD", Height: 1, Length: 1, ReceiptID: 5})
			d.ParkingReceipts = append(d.ParkingReceipts, ReceiptRecord{ID: 5})
		}},
		{name: "неизвестная категория", mutate: func(d *Document) { d.Vehicles[0].Type = "TANK" }},
		{name: "место чужой зоны", mutate: func(d *Document) {
			d.ParkingZones[0].ParkingSpaces = append(d.ParkingZones[0].ParkingSpaces, SpaceRecord{ID: "B1"})
		}},
		{name: "повтор квитанции", mutate: func(d *Document) {
			d.ParkingReceipts = append(d.ParkingReceipts, d.ParkingReceipts[0])
		}},
		{name: "повтор сотрудника", mutate: func(d *Document) { d.Employees[1].ID = 0 }},
		{name: "жетон вне диапазона", mutate: func(d *Document) { d.ExitTokens[0].ID = 99 }},
		{name: "отрицательный тариф", mutate: func(d *Document) { d.ParkingZones[1].Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDocument()
			tt.mutate(doc)

			state, err := Decode(doc)
			assert.ErrorIs(t, err, domain.ErrCorruptSnapshot)
			assert.Nil(t, state)
		})
	}
}
