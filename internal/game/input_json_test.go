package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGameInputJSONSelectResources(t *testing.T) {
	in := &GameInput{
		InputType:        InputSelectResources,
		PrevInputType:    InputPlayCard,
		PlayerID:         "p1",
		CardContext:      CardDoctor,
		ToSpend:          true,
		SpecificResource: ResourceTypeBerry,
		MinResources:     0,
		MaxResources:     3,
		ClientOptions: ClientOptions{
			Resources: ResourceMap{ResourceTypeBerry: 2},
		},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "toSpend") {
		t.Fatal("resource selections should carry toSpend")
	}

	var out GameInput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.InputType != in.InputType || out.PrevInputType != in.PrevInputType {
		t.Fatal("the step identity should survive")
	}
	if out.CardContext != CardDoctor || !out.ToSpend {
		t.Fatal("the context and mode should survive")
	}
	if out.ClientOptions.Resources[ResourceTypeBerry] != 2 {
		t.Fatal("the selection should survive")
	}
}

func TestGameInputJSONWorkerPlacement(t *testing.T) {
	in := &GameInput{
		InputType:     InputSelectWorkerPlacement,
		PrevInputType: InputPrepareForSeason,
		PlayerID:      "p1",
		CardContext:   CardClockTower,
		WorkerOptions: []WorkerPlacementInfo{
			{Location: LocationBasicThreeTwigs},
		},
		ClientOptions: ClientOptions{
			SelectedWorker: &WorkerPlacementInfo{Location: LocationBasicThreeTwigs},
		},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out GameInput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.WorkerOptions) != 1 ||
		out.WorkerOptions[0].Location != LocationBasicThreeTwigs {
		t.Fatal("the options should survive")
	}
	if out.ClientOptions.SelectedWorker == nil ||
		out.ClientOptions.SelectedWorker.Location != LocationBasicThreeTwigs {
		t.Fatal("the selection should survive")
	}
	if !out.MatchesPending(in) {
		t.Fatal("the round trip should still match its pending")
	}
}

func TestGameInputJSONNullSelectedOption(t *testing.T) {
	data := []byte(`{"inputType":"SELECT_OPTION_GENERIC","playerId":"p1","clientOptions":{"selectedOption":null}}`)
	var out GameInput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ClientOptions.SelectedOption != "" {
		t.Fatal("a null option reads back as empty")
	}
}
