package store

import "testing"

func TestMarshalRewardProducesJSON(t *testing.T) {
	data, err := MarshalReward(map[string]any{"total": 0.8})
	if err != nil {
		t.Fatalf("MarshalReward() error = %v", err)
	}
	if string(data) != `{"total":0.8}` {
		t.Errorf("MarshalReward() = %s, unexpected", data)
	}
}

func TestMarshalRewardRejectsUnmarshalableValue(t *testing.T) {
	_, err := MarshalReward(make(chan int))
	if err == nil {
		t.Fatal("expected an error marshaling a channel value")
	}
}
