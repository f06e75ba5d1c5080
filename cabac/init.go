/*
DESCRIPTION
  init.go provides the per-ctxIdx (m, n) initialization pairs used by
  ContextState.Init (9.3.1.1), and the ContextModels container that owns one
  ContextState per ctxIdx for a slice's CABAC-coded data.

AUTHORS
  h264dec contributors
*/

package cabac

import "github.com/coastwatch/h264dec/slice"

// NumContexts is the size of the flat ctxIdx space this decoder allocates
// context state for. The standard's tables 9-12 through 9-33 define
// initialization pairs up to ctxIdx 1023 (split across cabac_init_idc 0-2
// and I-slice-only values); this decoder's context tables below populate
// every ctxIdx actually read by the syntax elements implemented in the
// macroblock/residual packages, for every cabac_init_idc the syntax allows,
// except sub_mb_type's contexts (ctxIdx 21-23 for P/SP, 36-39 for B): those
// are read by DecodeSubMBTypeP/DecodeSubMBTypeB but have no entry below, so
// they start from the neutral initialization. ctxIdx this decoder never
// reads (the high-profile 8x8-transform-residual contexts, and anything past
// 401) fall back to the same neutral initialization.
const NumContexts = 1024

// mnPair is one (m, n) initialization value, table 9-12 through 9-33.
type mnPair struct{ m, n int }

// neutral is used for any ctxIdx this decoder does not assign a
// standard-derived pair to: preCtxState = clip3(1,126,64) = 64, giving
// pStateIdx 0 and valMPS 1 (an unbiased starting state slightly favouring
// bin value 1, matching the engine's own clip3 derivation in
// ContextState.Init).
var neutral = mnPair{m: 0, n: 64}

// ctxIdxInitUniversal holds the (m, n) pairs for ctxIdx 3 to 10, table
// 9-12: mb_type for I slices (ctxIdx 0-2, the SI prefix, have no entry). This table does not vary by
// cabac_init_idc (I/SI slices never signal one), and is also the table
// used to decode an I-coded macroblock's mb_type when it appears inside a
// P, SP, or B slice (the raw>=5 / raw>=23 escape paths in
// decoder/mb_inter.go) — the escape is still "decoding an I-slice-style
// mb_type", so it reads the same fixed contexts regardless of the
// enclosing slice's own cabac_init_idc.
var ctxIdxInitUniversal = map[int]mnPair{
	3: {20, -15}, 4: {2, 54}, 5: {3, 74}, 6: {20, -15}, 7: {2, 54},
	8: {3, 74}, 9: {20, -15}, 10: {2, 54},
}

// ctxIdxInitPB holds, for each cabac_init_idc value (index 0, 1, 2), the
// (m, n) pairs for every other ctxIdx this decoder populates: the P/B
// slice-only syntax elements (mb_skip_flag, mb_type, ref_idx, mvd) and the
// syntax elements I slices also use but which the standard still tables
// per cabac_init_idc (mb_qp_delta, intra_chroma_pred_mode, prev/rem intra
// pred mode, coded_block_pattern, coded_block_flag, significant_coeff_flag,
// last_significant_coeff_flag, coeff_abs_level_minus1,
// transform_size_8x8_flag). I and SI slices do not signal cabac_init_idc at
// all; 9.3.1.1 has the decoder behave as if cabac_init_idc were 0 for any
// of these ctxIdx values an I/SI slice does read, so NewContextModels below
// always selects index 0 for I/SI slices.
var ctxIdxInitPB = [3]map[int]mnPair{
	0: {
		// mb_skip_flag (P/SP slices), ctxIdx 11-13, table 9-13.
				11: {23, 33}, 12: {22, 25}, 13: {29, 16},
		// mb_type (P/SP slices), ctxIdx 14-20, table 9-16.
				14: {23, 33}, 15: {22, 25}, 16: {29, 16}, 17: {25, 32}, 18: {26, 16}, 19: {19, 57},
		20: {19, 57},
		// mb_skip_flag (B slices), ctxIdx 24-26, table 9-17.
				24: {17, 32}, 25: {20, 19}, 26: {22, 15},
		// mb_type (B slices), ctxIdx 27-32, table 9-18.
				27: {17, 32}, 28: {20, 19}, 29: {22, 15}, 30: {18, 40}, 31: {22, 20}, 32: {19, 42},
		// mb_field_decoding_flag, ctxIdx 70-72, table 9-14 (this decoder does not
		// support field-coded pictures; carried for completeness only).
				70: {0, 11}, 71: {1, 55}, 72: {0, 69},
		// mb_qp_delta, ctxIdx 60-63, table 9-21.
				60: {17, -13}, 61: {20, -14}, 62: {-4, 4}, 63: {-5, 58},
		// intra_chroma_pred_mode, ctxIdx 64-66, table 9-22.
				64: {25, 13}, 65: {23, 14}, 66: {22, 19},
		// prev_intra4x4/8x8_pred_mode_flag, ctxIdx 68, table 9-23.
				68: {9, 23},
		// rem_intra4x4/8x8_pred_mode, ctxIdx 69, table 9-23.
				69: {9, 23},
		// transform_size_8x8_flag, ctxIdx 399-401, table 9-24.
				399: {9, 36}, 400: {28, 13}, 401: {23, 22},
		// ref_idx_l0/l1, ctxIdx 54-59, table 9-25.
				54: {20, -10}, 55: {-1, 76}, 56: {-8, 77}, 57: {15, 38}, 58: {-17, 104}, 59: {-21, 107},
		// mvd (horizontal/vertical), ctxIdx 40-53, table 9-26/9-27.
				40: {8, -14}, 41: {6, -5}, 42: {18, -13}, 43: {27, -28}, 44: {21, -9}, 45: {16, -1},
		46: {20, -3}, 47: {7, 27}, 48: {9, 21}, 49: {6, 42}, 50: {20, -3}, 51: {7, 27},
		52: {9, 21}, 53: {6, 42},
		// coded_block_pattern (luma), ctxIdx 73-76, table 9-19.
				73: {18, 22}, 74: {22, 26}, 75: {22, 14}, 76: {25, 16},
		// coded_block_pattern (chroma), ctxIdx 77-84, table 9-20.
				77: {26, 18}, 78: {18, 30}, 79: {25, 22}, 80: {22, 22}, 81: {20, 22}, 82: {22, 33},
		83: {15, 33}, 84: {23, 14},
		// coded_block_flag, ctxIdx 85-104 (luma/chroma DC/AC/4x4/8x8), table 9-28.
				85: {13, 13}, 86: {5, 37}, 87: {25, 38}, 88: {16, 59}, 89: {26, 13}, 90: {28, 17},
		91: {26, 6}, 92: {24, 9}, 93: {21, 14}, 94: {27, 12}, 95: {21, 13}, 96: {28, 21},
		97: {27, 9}, 98: {27, 13}, 99: {17, 30}, 100: {24, 13}, 101: {25, 2}, 102: {18, 26},
		103: {25, 14}, 104: {16, 17},
		// significant_coeff_flag (frame), ctxIdx 105-165, table 9-29.
				105: {24, 8}, 106: {24, 8}, 107: {24, 9}, 108: {23, 9}, 109: {23, 10}, 110: {23, 10},
		111: {23, 11}, 112: {23, 11}, 113: {22, 12}, 114: {22, 12}, 115: {22, 13}, 116: {22, 13},
		117: {22, 14}, 118: {21, 14}, 119: {21, 15}, 120: {21, 15}, 121: {21, 15}, 122: {21, 15},
		123: {21, 15}, 124: {21, 16}, 125: {21, 16}, 126: {21, 16}, 127: {21, 16}, 128: {20, 16},
		129: {20, 16}, 130: {20, 16}, 131: {20, 16}, 132: {20, 17}, 133: {20, 17}, 134: {20, 17},
		135: {20, 17}, 136: {20, 17}, 137: {20, 18}, 138: {20, 18}, 139: {20, 18}, 140: {20, 19},
		141: {20, 19}, 142: {20, 19}, 143: {19, 20}, 144: {19, 20}, 145: {19, 20}, 146: {19, 21},
		147: {19, 21}, 148: {19, 21}, 149: {19, 22}, 150: {19, 22}, 151: {19, 22}, 152: {19, 22},
		153: {19, 22}, 154: {18, 22}, 155: {18, 22}, 156: {18, 22}, 157: {18, 22}, 158: {18, 23},
		159: {18, 23}, 160: {18, 23}, 161: {18, 23}, 162: {17, 23}, 163: {17, 23}, 164: {17, 23},
		165: {17, 23},
		// last_significant_coeff_flag (frame), ctxIdx 166-226, table 9-30.
				166: {21, -5}, 167: {21, -5}, 168: {21, -4}, 169: {21, -4}, 170: {20, -3}, 171: {20, -3},
		172: {20, -2}, 173: {20, -2}, 174: {20, -2}, 175: {20, -1}, 176: {20, -1}, 177: {19, 0},
		178: {19, 0}, 179: {19, 1}, 180: {19, 1}, 181: {19, 1}, 182: {19, 2}, 183: {19, 2},
		184: {19, 3}, 185: {18, 3}, 186: {18, 4}, 187: {18, 4}, 188: {18, 5}, 189: {18, 5},
		190: {18, 6}, 191: {18, 6}, 192: {18, 6}, 193: {18, 7}, 194: {18, 7}, 195: {18, 8},
		196: {17, 8}, 197: {17, 9}, 198: {17, 9}, 199: {17, 10}, 200: {17, 10}, 201: {17, 10},
		202: {17, 11}, 203: {17, 11}, 204: {17, 12}, 205: {17, 12}, 206: {17, 13}, 207: {16, 13},
		208: {16, 14}, 209: {16, 14}, 210: {16, 15}, 211: {16, 15}, 212: {16, 16}, 213: {16, 16},
		214: {16, 16}, 215: {16, 17}, 216: {16, 17}, 217: {16, 18}, 218: {16, 18}, 219: {16, 19},
		220: {15, 19}, 221: {15, 20}, 222: {15, 20}, 223: {15, 21}, 224: {15, 21}, 225: {15, 22},
		226: {15, 22},
		// coeff_abs_level_minus1, ctxIdx 227-275, table 9-31.
				227: {17, -10}, 228: {17, -10}, 229: {17, -9}, 230: {18, -9}, 231: {18, -8}, 232: {18, -8},
		233: {18, -8}, 234: {19, -7}, 235: {19, -7}, 236: {19, -7}, 237: {19, -6}, 238: {20, -6},
		239: {20, -5}, 240: {20, -5}, 241: {20, -4}, 242: {20, -4}, 243: {20, -3}, 244: {20, -3},
		245: {20, -2}, 246: {20, -2}, 247: {20, -1}, 248: {19, -1}, 249: {19, 0}, 250: {19, 0},
		251: {19, 1}, 252: {19, 1}, 253: {19, 2}, 254: {19, 2}, 255: {19, 3}, 256: {19, 4},
		257: {18, 5}, 258: {18, 6}, 259: {18, 8}, 260: {17, 9}, 261: {17, 10}, 262: {17, 11},
		263: {16, 12}, 264: {16, 13}, 265: {16, 14}, 266: {15, 16}, 267: {15, 17}, 268: {14, 18},
		269: {14, 19}, 270: {14, 20}, 271: {13, 21}, 272: {13, 23}, 273: {13, 24}, 274: {12, 25},
		275: {12, 26},
	},
	1: {
		// mb_skip_flag (P/SP slices), ctxIdx 11-13, table 9-13.
				11: {20, 36}, 12: {18, 30}, 13: {27, 19},
		// mb_type (P/SP slices), ctxIdx 14-20, table 9-16.
				14: {23, 36}, 15: {20, 29}, 16: {28, 19}, 17: {24, 35}, 18: {24, 19}, 19: {16, 60},
		20: {16, 60},
		// mb_skip_flag (B slices), ctxIdx 24-26, table 9-17.
				24: {17, 33}, 25: {18, 22}, 26: {21, 18},
		// mb_type (B slices), ctxIdx 27-32, table 9-18.
				27: {16, 37}, 28: {18, 22}, 29: {19, 18}, 30: {15, 44}, 31: {19, 23}, 32: {15, 45},
		// mb_field_decoding_flag, ctxIdx 70-72, table 9-14 (this decoder does not
		// support field-coded pictures; carried for completeness only).
				70: {-3, 14}, 71: {-2, 58}, 72: {-4, 74},
		// mb_qp_delta, ctxIdx 60-63, table 9-21.
				60: {14, -9}, 61: {17, -11}, 62: {-8, 7}, 63: {-7, 61},
		// intra_chroma_pred_mode, ctxIdx 64-66, table 9-22.
				64: {25, 16}, 65: {21, 17}, 66: {21, 21},
		// prev_intra4x4/8x8_pred_mode_flag, ctxIdx 68, table 9-23.
				68: {7, 26},
		// rem_intra4x4/8x8_pred_mode, ctxIdx 69, table 9-23.
				69: {6, 24},
		// transform_size_8x8_flag, ctxIdx 399-401, table 9-24.
				399: {6, 37}, 400: {25, 16}, 401: {20, 25},
		// ref_idx_l0/l1, ctxIdx 54-59, table 9-25.
				54: {20, -9}, 55: {-3, 79}, 56: {-9, 80}, 57: {14, 43}, 58: {-19, 107}, 59: {-24, 110},
		// mvd (horizontal/vertical), ctxIdx 40-53, table 9-26/9-27.
				40: {5, -11}, 41: {3, -2}, 42: {14, -8}, 43: {25, -25}, 44: {21, -6}, 45: {14, 3},
		46: {19, 0}, 47: {6, 30}, 48: {7, 24}, 49: {3, 45}, 50: {17, 0}, 51: {4, 29},
		52: {5, 24}, 53: {4, 45},
		// coded_block_pattern (luma), ctxIdx 73-76, table 9-19.
				73: {16, 25}, 74: {22, 29}, 75: {20, 18}, 76: {24, 19},
		// coded_block_pattern (chroma), ctxIdx 77-84, table 9-20.
				77: {25, 21}, 78: {16, 33}, 79: {22, 25}, 80: {19, 25}, 81: {17, 24}, 82: {18, 36},
		83: {13, 36}, 84: {23, 15},
		// coded_block_flag, ctxIdx 85-104 (luma/chroma DC/AC/4x4/8x8), table 9-28.
				85: {11, 16}, 86: {4, 40}, 87: {24, 43}, 88: {14, 62}, 89: {23, 16}, 90: {25, 21},
		91: {23, 9}, 92: {20, 12}, 93: {19, 17}, 94: {27, 15}, 95: {19, 16}, 96: {27, 23},
		97: {26, 12}, 98: {25, 16}, 99: {14, 31}, 100: {21, 16}, 101: {22, 5}, 102: {14, 31},
		103: {23, 17}, 104: {16, 20},
		// significant_coeff_flag (frame), ctxIdx 105-165, table 9-29.
				105: {22, 12}, 106: {23, 11}, 107: {23, 12}, 108: {21, 12}, 109: {20, 13}, 110: {20, 13},
		111: {20, 13}, 112: {19, 14}, 113: {20, 15}, 114: {22, 13}, 115: {20, 16}, 116: {21, 16},
		117: {21, 19}, 118: {19, 17}, 119: {18, 18}, 120: {18, 19}, 121: {18, 18}, 122: {17, 18},
		123: {19, 18}, 124: {21, 19}, 125: {19, 19}, 126: {20, 18}, 127: {20, 19}, 128: {18, 19},
		129: {17, 17}, 130: {17, 19}, 131: {17, 19}, 132: {16, 22}, 133: {18, 20}, 134: {20, 20},
		135: {18, 21}, 136: {19, 20}, 137: {19, 21}, 138: {18, 21}, 139: {17, 21}, 140: {17, 22},
		141: {17, 21}, 142: {16, 22}, 143: {17, 23}, 144: {19, 21}, 145: {17, 23}, 146: {18, 24},
		147: {18, 26}, 148: {17, 24}, 149: {16, 25}, 150: {16, 26}, 151: {16, 25}, 152: {15, 25},
		153: {17, 25}, 154: {18, 25}, 155: {16, 25}, 156: {17, 24}, 157: {17, 25}, 158: {16, 26},
		159: {15, 24}, 160: {15, 26}, 161: {15, 26}, 162: {13, 28}, 163: {15, 26}, 164: {17, 26},
		165: {15, 27},
		// last_significant_coeff_flag (frame), ctxIdx 166-226, table 9-30.
				166: {18, -3}, 167: {20, -3}, 168: {22, -4}, 169: {20, -2}, 170: {20, -1}, 171: {20, 1},
		172: {19, 0}, 173: {18, 0}, 174: {18, 1}, 175: {18, 1}, 176: {17, 1}, 177: {18, 2},
		178: {20, 2}, 179: {18, 3}, 180: {19, 2}, 181: {19, 3}, 182: {18, 4}, 183: {17, 2},
		184: {17, 5}, 185: {16, 5}, 186: {15, 8}, 187: {17, 6}, 188: {19, 7}, 189: {17, 8},
		190: {18, 8}, 191: {18, 8}, 192: {17, 8}, 193: {16, 9}, 194: {16, 9}, 195: {16, 9},
		196: {14, 10}, 197: {16, 11}, 198: {18, 9}, 199: {16, 12}, 200: {17, 12}, 201: {17, 14},
		202: {16, 13}, 203: {15, 13}, 204: {15, 15}, 205: {15, 14}, 206: {14, 15}, 207: {15, 15},
		208: {17, 16}, 209: {15, 16}, 210: {16, 16}, 211: {16, 17}, 212: {15, 18}, 213: {14, 16},
		214: {14, 18}, 215: {14, 19}, 216: {13, 21}, 217: {15, 20}, 218: {17, 20}, 219: {15, 22},
		220: {15, 21}, 221: {15, 22}, 222: {14, 22}, 223: {13, 23}, 224: {13, 23}, 225: {13, 23},
		226: {12, 24},
		// coeff_abs_level_minus1, ctxIdx 227-275, table 9-31.
				227: {15, -6}, 228: {15, -5}, 229: {15, -5}, 230: {15, -5}, 231: {17, -4}, 232: {19, -4},
		233: {17, -4}, 234: {19, -4}, 235: {19, -3}, 236: {18, -3}, 237: {17, -4}, 238: {18, -2},
		239: {18, -1}, 240: {17, 1}, 241: {19, 0}, 242: {21, 0}, 243: {19, 2}, 244: {20, 1},
		245: {20, 2}, 246: {19, 2}, 247: {18, 3}, 248: {17, 3}, 249: {17, 3}, 250: {16, 4},
		251: {18, 5}, 252: {20, 3}, 253: {18, 6}, 254: {19, 6}, 255: {19, 9}, 256: {18, 8},
		257: {16, 9}, 258: {16, 11}, 259: {16, 12}, 260: {14, 13}, 261: {16, 14}, 262: {18, 15},
		263: {15, 16}, 264: {16, 16}, 265: {16, 18}, 266: {14, 20}, 267: {13, 19}, 268: {12, 22},
		269: {12, 23}, 270: {11, 26}, 271: {12, 25}, 272: {14, 27}, 273: {12, 29}, 274: {12, 29},
		275: {12, 30},
	},
	2: {
		// mb_skip_flag (P/SP slices), ctxIdx 11-13, table 9-13.
				11: {24, 30}, 12: {23, 23}, 13: {30, 13},
		// mb_type (P/SP slices), ctxIdx 14-20, table 9-16.
				14: {23, 30}, 15: {24, 22}, 16: {33, 13}, 17: {27, 29}, 18: {29, 12}, 19: {22, 54},
		20: {21, 54},
		// mb_skip_flag (B slices), ctxIdx 24-26, table 9-17.
				24: {17, 31}, 25: {22, 16}, 26: {26, 12},
		// mb_type (B slices), ctxIdx 27-32, table 9-18.
				27: {19, 30}, 28: {23, 16}, 29: {25, 12}, 30: {20, 37}, 31: {23, 17}, 32: {20, 39},
		// mb_field_decoding_flag, ctxIdx 70-72, table 9-14 (this decoder does not
		// support field-coded pictures; carried for completeness only).
				70: {2, 8}, 71: {2, 52}, 72: {1, 67},
		// mb_qp_delta, ctxIdx 60-63, table 9-21.
				60: {19, -16}, 61: {21, -17}, 62: {-3, 1}, 63: {-4, 54},
		// intra_chroma_pred_mode, ctxIdx 64-66, table 9-22.
				64: {25, 10}, 65: {25, 11}, 66: {26, 14},
		// prev_intra4x4/8x8_pred_mode_flag, ctxIdx 68, table 9-23.
				68: {12, 20},
		// rem_intra4x4/8x8_pred_mode, ctxIdx 69, table 9-23.
				69: {12, 22},
		// transform_size_8x8_flag, ctxIdx 399-401, table 9-24.
				399: {12, 35}, 400: {30, 10}, 401: {24, 19},
		// ref_idx_l0/l1, ctxIdx 54-59, table 9-25.
				54: {20, -11}, 55: {1, 73}, 56: {-4, 74}, 57: {17, 36}, 58: {-14, 101}, 59: {-18, 104},
		// mvd (horizontal/vertical), ctxIdx 40-53, table 9-26/9-27.
				40: {10, -17}, 41: {7, -8}, 42: {19, -15}, 43: {28, -31}, 44: {21, -12}, 45: {18, -4},
		46: {24, -6}, 47: {9, 24}, 48: {12, 17}, 49: {9, 39}, 50: {22, -6}, 51: {8, 22},
		52: {10, 18}, 53: {7, 39},
		// coded_block_pattern (luma), ctxIdx 73-76, table 9-19.
				73: {19, 19}, 74: {22, 23}, 75: {24, 11}, 76: {29, 13},
		// coded_block_pattern (chroma), ctxIdx 77-84, table 9-20.
				77: {28, 15}, 78: {21, 26}, 79: {28, 19}, 80: {24, 19}, 81: {21, 17}, 82: {23, 30},
		83: {16, 30}, 84: {23, 13},
		// coded_block_flag, ctxIdx 85-104 (luma/chroma DC/AC/4x4/8x8), table 9-28.
				85: {15, 10}, 86: {9, 34}, 87: {27, 36}, 88: {19, 56}, 89: {29, 10}, 90: {30, 14},
		91: {27, 3}, 92: {25, 6}, 93: {22, 10}, 94: {27, 9}, 95: {23, 10}, 96: {32, 16},
		97: {29, 6}, 98: {30, 10}, 99: {20, 29}, 100: {26, 10}, 101: {26, -1}, 102: {19, 24},
		103: {26, 11}, 104: {16, 14},
		// significant_coeff_flag (frame), ctxIdx 105-165, table 9-29.
				105: {26, 5}, 106: {28, 5}, 107: {26, 6}, 108: {26, 5}, 109: {26, 7}, 110: {25, 7},
		111: {24, 6}, 112: {24, 8}, 113: {23, 9}, 114: {22, 11}, 115: {24, 10}, 116: {26, 10},
		117: {24, 12}, 118: {24, 11}, 119: {24, 12}, 120: {23, 12}, 121: {22, 12}, 122: {22, 12},
		123: {22, 11}, 124: {21, 13}, 125: {23, 13}, 126: {25, 11}, 127: {23, 13}, 128: {23, 13},
		129: {23, 15}, 130: {22, 13}, 131: {21, 13}, 132: {21, 15}, 133: {21, 14}, 134: {20, 14},
		135: {22, 14}, 136: {24, 14}, 137: {22, 15}, 138: {23, 14}, 139: {23, 15}, 140: {22, 16},
		141: {21, 14}, 142: {21, 16}, 143: {20, 17}, 144: {19, 19}, 145: {21, 17}, 146: {23, 18},
		147: {21, 19}, 148: {22, 18}, 149: {22, 19}, 150: {21, 19}, 151: {20, 19}, 152: {20, 19},
		153: {20, 18}, 154: {18, 19}, 155: {20, 19}, 156: {22, 17}, 157: {20, 19}, 158: {21, 20},
		159: {21, 22}, 160: {20, 20}, 161: {19, 20}, 162: {18, 21}, 163: {18, 20}, 164: {17, 20},
		165: {19, 20},
		// last_significant_coeff_flag (frame), ctxIdx 166-226, table 9-30.
				166: {21, -7}, 167: {21, -7}, 168: {20, -4}, 169: {22, -6}, 170: {23, -5}, 171: {21, -4},
		172: {22, -4}, 173: {22, -4}, 174: {21, -4}, 175: {20, -3}, 176: {20, -3}, 177: {19, -3},
		178: {18, -2}, 179: {20, -1}, 180: {22, -3}, 181: {20, -1}, 182: {21, 0}, 183: {21, 2},
		184: {20, 1}, 185: {18, 1}, 186: {18, 3}, 187: {18, 2}, 188: {17, 3}, 189: {19, 3},
		190: {21, 4}, 191: {19, 4}, 192: {20, 3}, 193: {20, 5}, 194: {19, 5}, 195: {18, 4},
		196: {17, 6}, 197: {17, 7}, 198: {16, 9}, 199: {18, 8}, 200: {20, 8}, 201: {18, 9},
		202: {19, 9}, 203: {19, 9}, 204: {18, 10}, 205: {17, 10}, 206: {17, 11}, 207: {16, 10},
		208: {15, 12}, 209: {17, 12}, 210: {19, 11}, 211: {17, 13}, 212: {18, 14}, 213: {18, 16},
		214: {17, 14}, 215: {16, 15}, 216: {16, 16}, 217: {16, 16}, 218: {15, 16}, 219: {17, 17},
		220: {18, 17}, 221: {16, 18}, 222: {17, 17}, 223: {17, 19}, 224: {16, 19}, 225: {15, 18},
		226: {15, 20},
		// coeff_abs_level_minus1, ctxIdx 227-275, table 9-31.
				227: {19, -14}, 228: {18, -14}, 229: {17, -13}, 230: {18, -13}, 231: {18, -13}, 232: {17, -12},
		233: {19, -12}, 234: {22, -13}, 235: {20, -11}, 236: {21, -11}, 237: {21, -8}, 238: {21, -10},
		239: {20, -9}, 240: {20, -8}, 241: {20, -8}, 242: {19, -8}, 243: {21, -7}, 244: {23, -7},
		245: {21, -6}, 246: {22, -7}, 247: {22, -5}, 248: {20, -5}, 249: {19, -6}, 250: {19, -4},
		251: {19, -3}, 252: {18, -1}, 253: {20, -2}, 254: {22, -2}, 255: {20, 0}, 256: {21, 0},
		257: {20, 1}, 258: {19, 2}, 259: {18, 4}, 260: {17, 5}, 261: {17, 5}, 262: {16, 7},
		263: {17, 8}, 264: {19, 7}, 265: {17, 10}, 266: {17, 12}, 267: {17, 15}, 268: {15, 14},
		269: {14, 15}, 270: {14, 17}, 271: {13, 17}, 272: {12, 19}, 273: {14, 20}, 274: {15, 21},
		275: {13, 22},
	},
}

// NewContextModels allocates and initializes one ContextState per ctxIdx in
// NumContexts, using sliceQPY for the m/n-to-pStateIdx derivation of
// 9.3.1.1. sliceType and cabacInitIDC select which of ctxIdxInitPB's three
// columns backs ctxIdx 11 and above (9.3.1.1's cabac_init_idc-dependent
// initialization); I and SI slices always use column 0 regardless of
// cabacInitIDC's value, since the syntax never signals one for them.
//
// The end_of_slice_flag / end_of_sub_mb_type_flag contexts (ctxIdx 276 for
// end_of_slice_flag in this decoder's layout) always start at pStateIdx 63,
// valMPS 0, per the note under table 9-11 — NewContextModels overrides the
// generic (m,n) derivation for that one index after initializing everything
// else uniformly.
func NewContextModels(sliceQPY int, sliceType uint, cabacInitIDC uint) []ContextState {
	pbIdx := 0
	base := slice.BaseType(sliceType)
	if base != slice.SliceTypeI && base != slice.SliceTypeSI {
		pbIdx = int(cabacInitIDC)
		if pbIdx < 0 || pbIdx > 2 {
			pbIdx = 0
		}
	}
	pb := ctxIdxInitPB[pbIdx]

	models := make([]ContextState, NumContexts)
	for idx := range models {
		pair, ok := ctxIdxInitUniversal[idx]
		if !ok {
			pair, ok = pb[idx]
		}
		if !ok {
			pair = neutral
		}
		models[idx].Init(pair.m, pair.n, sliceQPY)
	}
	models[276] = ContextState{PStateIdx: 63, ValMPS: 0}
	return models
}
