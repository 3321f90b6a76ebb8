package timeutil_test

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Garantias-api/pkg/timeutil"
)

func TestNow_UsaOffsetFijoMenos5(t *testing.T) {
	clk := testclock.NewClock(time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC))

	now := timeutil.Now(clk)

	_, offset := now.Zone()
	assert.Equal(t, -5*3600, offset)
	assert.Equal(t, 10, now.Hour(), "15:30 UTC son las 10:30 en Colombia")
	assert.True(t, now.Equal(clk.Now()), "el instante no cambia, solo la zona")
}

func TestStamp_HoraLocal(t *testing.T) {
	ts := time.Date(2024, 1, 1, 2, 5, 9, 0, time.UTC)
	assert.Equal(t, "20231231210509", timeutil.Stamp(ts))
}

func TestIn_TiempoCeroSeConserva(t *testing.T) {
	assert.True(t, timeutil.In(time.Time{}).IsZero())
}
