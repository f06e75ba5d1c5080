package cabac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/slice"
)

func TestNewContextModelsISliceAlwaysUsesColumnZero(t *testing.T) {
	// I slices never signal cabac_init_idc; NewContextModels must behave as
	// if it were 0 regardless of what (garbage) value is passed in.
	models := NewContextModels(26, slice.SliceTypeI, 2)
	want := ctxIdxInitPB[0][60]
	got := models[60]
	wantState := ContextState{}
	wantState.Init(want.m, want.n, 26)
	require.Equal(t, wantState, got)
}

func TestNewContextModelsPSliceSelectsSignalledIDC(t *testing.T) {
	for idc := uint(0); idc <= 2; idc++ {
		models := NewContextModels(26, slice.SliceTypeP, idc)
		want := ctxIdxInitPB[idc][11]
		var wantState ContextState
		wantState.Init(want.m, want.n, 26)
		require.Equalf(t, wantState, models[11], "cabac_init_idc=%d", idc)
	}
}

func TestNewContextModelsEndOfSliceFlagFixedState(t *testing.T) {
	models := NewContextModels(26, slice.SliceTypeB, 1)
	require.Equal(t, 63, models[276].PStateIdx)
	require.Equal(t, 0, models[276].ValMPS)
}

func TestCtxIdxInitPBColumnsDiffer(t *testing.T) {
	// The three cabac_init_idc columns must actually diverge for a P/B-only
	// ctxIdx — otherwise cabac_init_idc selection would be a no-op.
	if ctxIdxInitPB[0][11] == ctxIdxInitPB[1][11] && ctxIdxInitPB[0][11] == ctxIdxInitPB[2][11] {
		t.Fatal("ctxIdxInitPB[0..2][11] are all identical, cabac_init_idc selection has no effect")
	}
}
