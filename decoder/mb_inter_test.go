package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coastwatch/h264dec/inter"
	"github.com/coastwatch/h264dec/macroblock"
	"github.com/coastwatch/h264dec/picture"
	"github.com/coastwatch/h264dec/slice"
)

func TestCombineSampleUnweightedMatchesDefaultPred(t *testing.T) {
	require.Equal(t, 10, combineSample(10, 0, true, false, sampleWeights{}, 255))
	require.Equal(t, 20, combineSample(0, 20, false, true, sampleWeights{}, 255))
	require.Equal(t, 15, combineSample(10, 20, true, true, sampleWeights{}, 255))
}

func TestCombineSampleWeightedUniMatchesExplicitPredUni(t *testing.T) {
	w := sampleWeights{weighted: true, logWD: 5, w0: 40, o0: 2, w1: 20, o1: -1}
	want := inter.ExplicitPredUni(100, w.logWD, w.w0, w.o0, 255)
	require.Equal(t, want, combineSample(100, 0, true, false, w, 255))

	want = inter.ExplicitPredUni(100, w.logWD, w.w1, w.o1, 255)
	require.Equal(t, want, combineSample(0, 100, false, true, w, 255))
}

func TestCombineSampleWeightedBiMatchesExplicitPredBi(t *testing.T) {
	w := sampleWeights{weighted: true, logWD: 5, w0: 40, o0: 2, w1: 20, o1: -1}
	want := inter.ExplicitPredBi(50, 60, w.logWD, w.w0, w.w1, w.o0, w.o1, 255)
	require.Equal(t, want, combineSample(50, 60, true, true, w, 255))
}

func TestPartitionWeightsDefaultWhenUnsignalled(t *testing.T) {
	c := &sliceDecodeCtx{
		h:   &slice.Header{SliceType: slice.SliceTypeP},
		sps: &parameterSetPair{chromaArrayType: 1},
		pic: &picture.Picture{},
	}
	ref0 := &picture.Picture{}
	luma, cb, cr := c.partitionWeights(partInfo{mode: macroblock.PredL0, ref0: 0}, ref0, nil)
	require.False(t, luma.weighted)
	require.False(t, cb.weighted)
	require.False(t, cr.weighted)
}

func TestPartitionWeightsExplicitForWeightedPredFlag(t *testing.T) {
	pwt := &slice.PredWeightTable{
		LumaLog2WeightDenom: 5,
		LumaL0:              []slice.WeightOffset{{Weight: 48, Offset: 4}},
		ChromaLog2WeightDenom: 5,
		ChromaL0:            [][2]slice.WeightOffset{{{Weight: 30, Offset: 1}, {Weight: 32, Offset: -2}}},
	}
	c := &sliceDecodeCtx{
		h:   &slice.Header{SliceType: slice.SliceTypeP, PredWeightTable: pwt},
		sps: &parameterSetPair{chromaArrayType: 1, weightedPredFlag: true},
		pic: &picture.Picture{},
	}
	ref0 := &picture.Picture{}
	luma, cb, cr := c.partitionWeights(partInfo{mode: macroblock.PredL0, ref0: 0}, ref0, nil)

	require.True(t, luma.weighted)
	require.Equal(t, 5, luma.logWD)
	require.Equal(t, 48, luma.w0)
	require.Equal(t, 4, luma.o0)

	require.True(t, cb.weighted)
	require.Equal(t, 30, cb.w0)
	require.Equal(t, 1, cb.o0)

	require.True(t, cr.weighted)
	require.Equal(t, 32, cr.w0)
	require.Equal(t, -2, cr.o0)
}

func TestPartitionWeightsImplicitForBSliceIDC2(t *testing.T) {
	c := &sliceDecodeCtx{
		h:   &slice.Header{SliceType: slice.SliceTypeB},
		sps: &parameterSetPair{chromaArrayType: 1, weightedBipredIDC: 2},
		pic: &picture.Picture{PicOrderCnt: 4},
	}
	ref0 := &picture.Picture{PicOrderCnt: 0}
	ref1 := &picture.Picture{PicOrderCnt: 8}

	luma, cb, cr := c.partitionWeights(partInfo{mode: macroblock.PredBi, ref0: 0, ref1: 0}, ref0, ref1)
	wantW0, wantW1, wantLogWD := inter.ImplicitWeights(4, 0, 8, false)

	require.True(t, luma.weighted)
	require.Equal(t, wantW0, luma.w0)
	require.Equal(t, wantW1, luma.w1)
	require.Equal(t, wantLogWD, luma.logWD)
	require.Equal(t, luma, cb)
	require.Equal(t, luma, cr)
}

func TestPartitionWeightsImplicitSkippedForUniPrediction(t *testing.T) {
	c := &sliceDecodeCtx{
		h:   &slice.Header{SliceType: slice.SliceTypeB},
		sps: &parameterSetPair{chromaArrayType: 1, weightedBipredIDC: 2},
		pic: &picture.Picture{PicOrderCnt: 4},
	}
	ref0 := &picture.Picture{PicOrderCnt: 0}

	luma, _, _ := c.partitionWeights(partInfo{mode: macroblock.PredL0, ref0: 0}, ref0, nil)
	require.False(t, luma.weighted)
}
