package model

import "testing"

func TestFetchState_IsLoading(t *testing.T) {
	tests := []struct {
		state    FetchState
		expected bool
	}{
		{FetchStateEmpty, false},
		{FetchStateLoading, true},
		{FetchStateSuccess, false},
		{FetchStateError, false},
	}

	for _, test := range tests {
		result := test.state.IsLoading()
		if result != test.expected {
			t.Errorf("FetchState(%s).IsLoading() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestFetchState_IsSettled(t *testing.T) {
	tests := []struct {
		state    FetchState
		expected bool
	}{
		{FetchStateEmpty, false},
		{FetchStateLoading, false},
		{FetchStateSuccess, true},
		{FetchStateError, true},
	}

	for _, test := range tests {
		result := test.state.IsSettled()
		if result != test.expected {
			t.Errorf("FetchState(%s).IsSettled() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestFetchState_String(t *testing.T) {
	if FetchStateLoading.String() != "Loading" {
		t.Errorf("FetchState.String() = %s, expected Loading", FetchStateLoading.String())
	}
}
