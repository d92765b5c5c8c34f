package paging

import "testing"

func TestPaginate_Defaults(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 0, 0)
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Fatalf("defaults not applied: page=%d size=%d", p.Page, p.PageSize)
	}
	if len(p.Items) != DefaultPageSize || !p.HasNext || p.HasPrev || p.Total != 45 {
		t.Fatalf("unexpected first page: %+v", p)
	}
}

func TestPaginate_LastAndBeyond(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	last := Paginate(items, 3, 2)
	if len(last.Items) != 1 || last.Items[0] != "e" || last.HasNext || !last.HasPrev {
		t.Fatalf("unexpected last page: %+v", last)
	}

	beyond := Paginate(items, 10, 2)
	if len(beyond.Items) != 0 || beyond.HasNext {
		t.Fatalf("expected empty page beyond range: %+v", beyond)
	}
}
