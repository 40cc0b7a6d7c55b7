package view

import (
	"sync"

	"helmetwatch/internal/dto"
	"helmetwatch/internal/model"
)

// Dashboard holds the displayed count and date.
type Dashboard struct {
	mu       sync.RWMutex
	count    int
	date     string
	time     string
	notifier Notifier
}

// NewDashboard creates an empty dashboard. notifier may be nil.
func NewDashboard(notifier Notifier) *Dashboard {
	return &Dashboard{notifier: notifier}
}

// Show updates the displayed count, date and time from sample.
func (d *Dashboard) Show(sample model.StatSample) {
	d.mu.Lock()
	d.count = sample.NoHelmet
	d.date = sample.Date
	d.time = sample.Time
	d.mu.Unlock()

	if d.notifier != nil {
		count := sample.NoHelmet
		d.notifier.Publish(dto.ViewEvent{
			Type:  dto.EventStats,
			Count: &count,
			Date:  sample.Date,
			Time:  sample.Time,
		})
	}
}

// ChartRendered tells viewers a new chart image is available.
func (d *Dashboard) ChartRendered(version uint64) {
	if d.notifier != nil {
		d.notifier.Publish(dto.ViewEvent{Type: dto.EventChart, URL: "/chart.png", Version: version})
	}
}

// Displayed returns the currently displayed values.
func (d *Dashboard) Displayed() model.StatSample {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return model.StatSample{NoHelmet: d.count, Date: d.date, Time: d.time}
}
