package form

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		state FieldState
		event Event
		want  FieldState
	}{
		{
			name:  "input valid email",
			kind:  KindEmail,
			event: UserInput{Value: "a@b.com"},
			want:  FieldState{Value: "a@b.com", IsValid: Valid},
		},
		{
			name:  "input invalid email",
			kind:  KindEmail,
			state: FieldState{Value: "a@b.com", IsValid: Valid},
			event: UserInput{Value: "ab.com"},
			want:  FieldState{Value: "ab.com", IsValid: Invalid},
		},
		{
			name:  "blur revalidates stored value",
			kind:  KindPassword,
			state: FieldState{Value: "abcd", IsValid: Unknown},
			event: Blur{},
			want:  FieldState{Value: "abcd", IsValid: Valid},
		},
		{
			name:  "blur on pristine field",
			kind:  KindEmail,
			event: Blur{},
			want:  FieldState{Value: "", IsValid: Invalid},
		},
		{
			name:  "reset",
			kind:  KindPassword,
			state: FieldState{Value: "secret", IsValid: Valid},
			event: Reset{},
			want:  FieldState{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.kind, tt.state, tt.event)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldScenarios(t *testing.T) {
	email := NewField(KindEmail)
	email.Dispatch(UserInput{Value: "a@b.com"})
	got := email.Dispatch(Blur{})
	if diff := cmp.Diff(FieldState{Value: "a@b.com", IsValid: Valid}, got); diff != "" {
		t.Errorf("email mismatch (-want +got):\n%s", diff)
	}

	password := NewField(KindPassword)
	password.Dispatch(UserInput{Value: "abc"})
	got = password.Dispatch(Blur{})
	if diff := cmp.Diff(FieldState{Value: "abc", IsValid: Invalid}, got); diff != "" {
		t.Errorf("password mismatch (-want +got):\n%s", diff)
	}
}

func TestBlurIsIdempotent(t *testing.T) {
	for _, v := range []string{"", "abc", "abcd", "a@b", "   "} {
		for _, kind := range []Kind{KindEmail, KindPassword} {
			start := Reduce(kind, FieldState{}, UserInput{Value: v})
			once := Reduce(kind, start, Blur{})
			twice := Reduce(kind, once, Blur{})
			if once != twice {
				t.Errorf("%s %q: blur twice = %+v, once = %+v", kind, v, twice, once)
			}
		}
	}
}

func TestValueTracksLastInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := []string{"", "a", "a@b", "abcd", " x ", "@@"}

	for run := 0; run < 200; run++ {
		f := NewField(KindEmail)
		want := ""
		for i := 0; i < 20; i++ {
			switch rng.Intn(3) {
			case 0:
				v := values[rng.Intn(len(values))]
				f.Dispatch(UserInput{Value: v})
				want = v
			case 1:
				f.Dispatch(Blur{})
			case 2:
				f.Dispatch(Reset{})
				want = ""
			}
			if got := f.State().Value; got != want {
				t.Fatalf("run %d step %d: value = %q, want %q", run, i, got, want)
			}
		}
	}
}

func TestValidityJSON(t *testing.T) {
	data, err := json.Marshal([]FieldState{
		{Value: "", IsValid: Unknown},
		{Value: "a@b", IsValid: Valid},
		{Value: "ab", IsValid: Invalid},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"value":"","isValid":null},{"value":"a@b","isValid":true},{"value":"ab","isValid":false}]`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var states []FieldState
	if err := json.Unmarshal(data, &states); err != nil {
		t.Fatal(err)
	}
	if states[0].IsValid != Unknown || states[1].IsValid != Valid || states[2].IsValid != Invalid {
		t.Errorf("unexpected round trip: %+v", states)
	}
}

func TestValidityTrue(t *testing.T) {
	if Unknown.True() || Invalid.True() || !Valid.True() {
		t.Error("only Valid should be true")
	}
}
