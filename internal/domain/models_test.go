package domain

import (
	"encoding/json"
	"testing"
)

func TestFlexString_Unmarshal(t *testing.T) {
	cases := map[string]FlexString{
		`"123"`:       "123",
		`456`:         "456",
		`"slug-name"`: "slug-name",
		`null`:        "",
		`7.5`:         "7.5",
	}
	for in, want := range cases {
		var got FlexString
		if err := json.Unmarshal([]byte(in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if got != want {
			t.Errorf("FlexString(%s) = %q; want %q", in, got, want)
		}
	}
}

func TestFighter_Key(t *testing.T) {
	f := Fighter{ID: "f-77", Name: "Terence Crawford"}
	if got := f.Key(); got != "f-77" {
		t.Fatalf("Key = %q; want id", got)
	}
	f = Fighter{Name: "  Terence Crawford "}
	if got := f.Key(); got != "terence crawford" {
		t.Fatalf("Key = %q; want lowercased name", got)
	}
}

func TestOpponent_UnmarshalString(t *testing.T) {
	var o Opponent
	if err := json.Unmarshal([]byte(`"Manny Pacquiao"`), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.Name != "Manny Pacquiao" || o.Profile != nil {
		t.Fatalf("got %+v; want bare name", o)
	}
}

func TestOpponent_UnmarshalObject(t *testing.T) {
	var o Opponent
	raw := `{"id": 42, "name": "Manny Pacquiao", "stance": "Southpaw"}`
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if o.Name != "Manny Pacquiao" {
		t.Fatalf("Name = %q", o.Name)
	}
	if o.Profile == nil || o.Profile.Stance != "Southpaw" || o.Profile.ID != "42" {
		t.Fatalf("Profile = %+v; want full record", o.Profile)
	}
}

func TestOpponent_MarshalRoundTrip(t *testing.T) {
	named := Opponent{Name: "Unknown"}
	b, err := json.Marshal(named)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"Unknown"` {
		t.Fatalf("named variant = %s; want plain string", b)
	}

	withProfile := Opponent{Name: "GGG", Profile: &Fighter{ID: "ggg", Name: "GGG"}}
	b, err = json.Marshal(withProfile)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Opponent
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Profile == nil || back.Name != "GGG" {
		t.Fatalf("round trip lost the profile: %+v", back)
	}
}

func TestFight_UnmarshalTolerantFields(t *testing.T) {
	raw := `{
		"id": 9001,
		"date": "2021-10-09",
		"opponent": "Deontay Wilder",
		"result": "win",
		"method": "KO",
		"round": 11,
		"title_fight": true
	}`
	var f Fight
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f.ID != "9001" || f.Opponent.Name != "Deontay Wilder" || !f.TitleFight {
		t.Fatalf("decoded %+v", f)
	}
}
