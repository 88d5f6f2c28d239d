package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ViewKey is the storage key holding the navigator state between runs.
const ViewKey = "view"

type viewState struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Selected *string `json:"selected"`
}

// Save writes the displayed month and selection under ViewKey.
func (n *Navigator) Save(ctx context.Context, kv KV) error {
	st := viewState{Year: n.displayed.Year, Month: int(n.displayed.Month)}
	if n.selected != nil {
		s := n.selected.String()
		st.Selected = &s
	}
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return kv.Put(ctx, ViewKey, data)
}

// Restore loads state saved by Save. On any error the navigator keeps its
// current state; a missing key is not an error.
func (n *Navigator) Restore(ctx context.Context, kv KV) error {
	raw, ok, err := kv.Get(ctx, ViewKey)
	if err != nil {
		return fmt.Errorf("read view: %w", err)
	}
	if !ok {
		return nil
	}

	var st viewState
	if err := json.Unmarshal(raw, &st); err != nil {
		return fmt.Errorf("decode view: %w", err)
	}
	if st.Month < 1 || st.Month > 12 {
		return fmt.Errorf("decode view: month %d out of range", st.Month)
	}

	var selected *DateKey
	if st.Selected != nil {
		d, err := ParseDateKey(*st.Selected)
		if err != nil {
			return fmt.Errorf("decode view: %w", err)
		}
		selected = &d
	}

	n.displayed = YearMonth{Year: st.Year, Month: time.Month(st.Month)}
	n.selected = selected
	return nil
}
