package game

import (
	"testing"

	"lifeterm/src/field"
)

const (
	width  = 200
	height = 200
)

//nopView discards all updates
type nopView struct{}

func (nopView) UpdateField(*field.Field, int) {}
func (nopView) UpdateCursor(int, int)         {}
func (nopView) UpdateCommandLine(string)      {}
func (nopView) ReadCommandLine() string       { return "" }
func (nopView) WaitForInput(uint8) Input      { return TimeoutInput() }
func (nopView) CanAccommodate(int, int) bool  { return true }

func newBenchManager() *Manager {
	m := NewManager(width, height, nopView{}, DefaultOptions())
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y += 10 {
			_ = m.PlaceTemplate("glider", x, y)
		}
	}
	return m
}

func BenchmarkManager_Step(b *testing.B) {
	m := newBenchManager()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Step()
	}
}

func BenchmarkManager_StepBack(b *testing.B) {
	m := newBenchManager()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m.Step()
		b.StartTimer()
		m.StepBack()
	}
}

func BenchmarkField_Serialize(b *testing.B) {
	f := newBenchManager().Field()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := field.Parse(f.String()); err != nil {
			b.Fatal(err)
		}
	}
}
