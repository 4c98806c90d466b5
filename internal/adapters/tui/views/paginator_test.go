package views

import "testing"

func TestPaginator_CursorStaysOnPage(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("cursor=%d page=%d, want 4 and 2", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("VisibleRange() = %d,%d, want 3,6", start, end)
	}
}

func TestPaginator_Pages(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if p.TotalPages() != 3 {
		t.Errorf("TotalPages() = %d, want 3", p.TotalPages())
	}
	if !p.NextPage() || !p.NextPage() {
		t.Fatal("expected two more pages")
	}
	if p.NextPage() {
		t.Error("expected no page after the last")
	}
	if start, end := p.VisibleRange(); start != 6 || end != 7 {
		t.Errorf("VisibleRange() = %d,%d, want 6,7", start, end)
	}
	if !p.PrevPage() || p.Cursor() != 3 {
		t.Errorf("PrevPage cursor = %d, want 3", p.Cursor())
	}
}

func TestPaginator_SetTotalClampsCursor(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(10)
	p.SetCursor(9)
	p.SetTotal(4)

	if p.Cursor() != 3 {
		t.Errorf("Cursor() = %d, want 3", p.Cursor())
	}
}

func TestPaginator_SetPageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(30)
	p.SetCursor(12)
	p.SetPageSize(5)

	if start, end := p.VisibleRange(); start != 10 || end != 15 || p.CurrentPage() != 3 {
		t.Errorf("VisibleRange()=%d,%d CurrentPage()=%d, want 10,15 and 3", start, end, p.CurrentPage())
	}
	p.SetPageSize(0)
	if start, end := p.VisibleRange(); start != 10 || end != 15 {
		t.Errorf("zero page size must be ignored, VisibleRange()=%d,%d", start, end)
	}
}

func TestPaginator_Empty(t *testing.T) {
	p := NewPaginator(0)
	if p.TotalPages() != 1 || p.CursorDown() || p.CursorUp() {
		t.Error("empty paginator should have one page and no movement")
	}
}
