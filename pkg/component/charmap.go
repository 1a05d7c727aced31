package component

// CharMapping is one rewrite rule for repairing mis-encoded text. Bad is
// the byte sequence as it appears in damaged content, Good is the text it
// originally encoded.
type CharMapping struct {
	Bad  string
	Good string
}

// CharMappings is the ordered repair table for content that went through a
// double encode/decode cycle between cp-1252 and UTF-8. Rules apply
// sequentially in listed order and the order is load-bearing: several later
// rules only match text already rewritten by earlier ones. The table was
// assembled from an audit of damaged production strings, so it keeps every
// recorded row, including identity rows and duplicates. Treat it as
// read-only.
//
// The two rows whose replacement is the byte sequence \xed\xa0\xbd\xed\xb1\x89
// feed the row after them: that sequence is a UTF-16 surrogate pair for
// U+1F449 encoded byte-for-byte, which the final row of the chain collapses
// into the real rune.
var CharMappings = []CharMapping{
	{"\u00a0", "\u00a0"},
	{"\u00a1", "\u00a1"},
	{"\u00a2", "\u00a2"},
	{"\u00a3", "\u00a3"},
	{"\u00a4", "\u00a4"},
	{"\u00a5", "\u00a5"},
	{"\u00a6", "\u00a6"},
	{"\u00a7", "\u00a7"},
	{"\u00a8", "\u00a8"},
	{"\u00a9", "\u00a9"},
	{"\u00aa", "\u00aa"},
	{"\u00ab", "\u00ab"},
	{"\u00ac", "\u00ac"},
	{"\u00ad", "\u00ad"},
	{"\u00ae", "\u00ae"},
	{"\u00af", "\u00af"},
	{"\u00c0", "\u00c0"},
	{"\u00c1", "\u00c1"},
	{"\u00c2", "\u00c2"},
	{"\u00c3", "\u00c3"},
	{"\u00c4", "\u00c4"},
	{"\u00c5", "\u00c5"},
	{"\u00c6", "\u00c6"},
	{"\u00c7", "\u00c7"},
	{"\u00c8", "\u00c8"},
	{"\u00c9", "\u00c9"},
	{"\u00ca", "\u00ca"},
	{"\u00cb", "\u00cb"},
	{"\u00cc", "\u00cc"},
	{"\u00cd", "\u00cd"},
	{"\u00ce", "\u00ce"},
	{"\u00cf", "\u00cf"},
	{"\u00e0", "\u00e0"},
	{"\u00e1", "\u00e1"},
	{"\u00e2", "\u00e2"},
	{"\u00e3", "\u00e3"},
	{"\u00e4", "\u00e4"},
	{"\u00e5", "\u00e5"},
	{"\u00e6", "\u00e6"},
	{"\u00e7", "\u00e7"},
	{"\u00e8", "\u00e8"},
	{"\u00e9", "\u00e9"},
	{"\u00ea", "\u00ea"},
	{"\u00eb", "\u00eb"},
	{"\u00ec", "\u00ec"},
	{"\u00ed", "\u00ed"},
	{"\u00ee", "\u00ee"},
	{"\u00ef", "\u00ef"},
	{"\u00f0", "\u00f0"},
	{"\u00f1", "\u00f1"},
	{"\u00f2", "\u00f2"},
	{"\u00f3", "\u00f3"},
	{"\u00f4", "\u00f4"},
	{"\u00f5", "\u00f5"},

	// Stray \u00c2 bytes carry no text. Drop them.
	{"\u00c2", ""},

	// Must run before the \u00c3 pairs below start matching.
	{"\u00e0\u0192", "\u00c3"},

	{"\u00c3\u00a0", "\u00e0"},
	{"\u00c3\u00a1", "\u00e1"},
	{"\u00c3\u00a2", "\u00e2"},
	{"\u00c3\u00a3", "\u00e3"},
	{"\u00c3\u00a4", "\u00e4"},
	{"\u00c3\u00a5", "\u00e5"},
	{"\u00c3\u00a6", "\u00e6"},
	{"\u00c3\u00a7", "\u00e7"},
	{"\u00c3\u00a8", "\u00e8"},
	{"\u00c3\u00a9", "\u00e9"},
	{"\u00c3\u00aa", "\u00ea"},
	{"\u00c3\u00ab", "\u00eb"},
	{"\u00c3\u00ac", "\u00ec"},
	{"\u00c3\u00ad", "\u00ed"},
	{"\u00c3\u00ae", "\u00ee"},
	{"\u00c3\u00af", "\u00ef"},
	{"\u00c3\u00b0", "\u00f0"},
	{"\u00c3\u00b1", "\u00f1"},
	{"\u00c3\u00b2", "\u00f2"},
	{"\u00c3\u00b3", "\u00f3"},
	{"\u00c3\u00b4", "\u00f4"},
	{"\u00c3\u00b5", "\u00f5"},
	{"\u00c3\u00b6", "\u00f6"},
	{"\u00c3\u00b7", "\u00f7"},
	{"\u00c3\u00b8", "\u00f8"},
	{"\u00c3\u00b9", "\u00f9"},
	{"\u00c3\u00ba", "\u00fa"},
	{"\u00c3\u00bb", "\u00fb"},
	{"\u00c3\u00bc", "\u00fc"},
	{"\u00c3\u00bd", "\u00fd"},
	{"\u00c3\u00be", "\u00fe"},
	{"\u00c3\u00bf", "\u00ff"},
	{"\u00c3\u2013", "\u00d6"},
	{"\u00c3\u2014", "\u00d7"},
	{"\u00c3\u2018", "\u00d1"},
	{"\u00c3\u201c", "\u00d3"},
	{"\u00c3\u201e", "\u00c4"},
	{"\u00c3\u2021", "\u00c7"},
	{"\u00c3\u2022", "\u00d5"},
	{"\u00c3\u20ac", "\u00c0"},
	{"\u00c3\u0153", "\u00dc"},
	{"\u00c3\u0178", "\u00df"},
	{"\u0192\u00a0", ""},
	{"\u00c3\u0160", "\u00ca"},
	{"\u00c3\u0161", "\u00da"},
	{"\u00c3\u0192\u00a1", "\u00e1"},
	{"\u00c3\u0192\u00a2", "\u00e2"},
	{"\u00c3\u0192\u00a4", "\u00e4"},
	{"\u00c3\u0192\u00a7", "\u00e7"},
	{"\u00c3\u0192\u00a8", "\u00e8"},
	{"\u00c3\u0192\u00a9", "\u00e9"},
	{"\u00c3\u0192\u00aa", "\u00ea"},
	{"\u00c3\u0192\u00ad", "\u00ed"},
	{"\u00c3\u0192\u00b3", "\u00f3"},
	{"\u00c3\u0192\u00b5", "\u00f5"},
	{"\u00c3\u0192\u00b6", "\u00f6"},
	{"\u00c3\u0192\u00ba", "\u00fa"},
	{"\u00c3\u0192\u00bb", "\u00fb"},
	{"\u00c3\u0192\u00bc", "\u00fc"},
	{"\u00c3\u0192\u00c5\u201c", "\u00dc"},
	{"\u00c3\u0192\u00e2\u20ac\u00a2", "\u00d5"},
	{"\u00c3\u201a", ""},
	{"\u00c3\u2026\u00c5\u00b8", "\u015f"},
	{"\u00c3\u2030\u00e2\u20ac\u00ba", "\u025b"},
	// Must stay after the longer \u00c3\u2030 sequence above.
	{"\u00c3\u2030", "\u00c9"},

	// Only sound once every other \u00c3 sequence has been rewritten.
	{"\u00c3", "\u00e0"},

	{"\u00c4\u20ac", "\u0100"},
	{"\u00c4\u2026", "\u0105"},
	{"\u00c4\u2021", "\u0107"},
	{"\u00c4\u2122", "\u0119"},
	{"\u00c4\u0152", "\u010c"},
	{"\u00c4\u017e", "\u011e"},
	{"\u00c4\u0178", "\u011f"},
	{"\u00c4\u00c5\u00b8", "\u011f"},
	{"\u00c4\u00ab", "\u012b"},
	{"\u00c4\u00b0", "\u0130"},
	{"\u00c4\u00b1", "\u0131"},
	{"\u00c4\u00bb", "\u013b"},
	{"\u00c5\u00ba", "\u017a"},
	{"\u00c5\u00be", "\u017e"},
	{"\u00c5\u017e", "\u015e"},
	{"\u00c5\u203a", "\u015b"},
	{"\u00c5\u0178", "\u015f"},
	{"\u00c5\u2018", "\u0151"},
	{"\u00c9\u203a", "\u025b"},
	{"\u00cc\u20ac", "\u0300"},
	{"\u00ce\u201d", "\u0394"},
	{"\u00cf\u20ac", "\u03c0"},
	{"\u00d1\u02c6", "\u0448"},
	{"\u00d7\u2018", "\u05d1"},
	{"\u00d8\u0178", "\u061f"},
	{"\u00d8\u00b5", "\u0635"},
	{"\u00d8\u00ad", "\u062d"},
	{"\u00d8\u00a4", "\u0624"},
	{"\u00d9\u0160", "\u064a"},
	{"\u00d9\u2026", "\u0645"},
	{"\u00d9\u02c6", "\u0648"},
	{"\u00d9\u2030", "\u0649"},
	{"\u00e0\u00b6\u2021", "\u0d87"},
	{"\u00e0\u00b6\u2026", "\u0d85"},
	{"\u00e1\u00b9\u203a", "\u1e5b"},
	{"\u00e1\u00bb\u201c", "\u1ed3"},
	{"\u00e1\u00bb\u2026", "\u1ec5"},
	{"\u00e1\u00ba\u00bf", "\u1ebf"},
	{"\u00e1\u00bb\u0178", "\u1edf"},
	{"\u00e2\u2020\u2019", "\u2192"},
	{"\u00e2\u00cb\u2020\u00e2\u20ac\u00b0", "\u2209"},
	{"\u00e2\u20ac\u0153", "\u201c"},
	{"\u00e2\u02c6\u2030", "\u2209"},
	{"\u00e2\u2026\u02dc", "\u2158"},
	{"\u00e2\u20ac\u2122", "\u2019"},
	{"\u00e2\u02c6\u0161", "\u221a"},
	{"\u00e2\u02c6\u02c6", "\u2208"},
	{"\u00e2\u2026\u2022", "\u2155"},
	{"\u00e2\u2026\u2122", "\u2159"},
	{"\u00e2\u20ac\u02dc", "\u2018"},
	{"\u00e2\u20ac\u201d", "\u2014"},
	{"\u00e2\u20ac\u2039", "\u200b"},
	{"\u00e2\u20ac\u00a6", "\u2026"},
	{"\u00e2\u2014\u00af", "\u25ef"},
	{"\u00e2\u20ac\u201c", "\u2013"},
	{"\u00e2\u2026\u2013", "\u2156"},
	{"\u00e2\u2026\u201d", "\u2154"},
	{"\u00e2\u2030\u00a4", "\u2264"},
	{"\u00e2\u201a\u00ac", "\u20ac"},
	{"\u00e2\u0153\u2026", "\u2705"},
	{"\u00e2\u017e\u00a4", "\u27a4"},
	{"\u00e2\u02dc\u00ba", "\u263a"},
	{"\u00e2\u203a\u00b1", "\u26f1"},
	{"\u00e2\u20ac", "\u2020"},
	{"\u00e2\u20ac\u201c", "\u2013"},
	{"\u00e2\u20ac\u00a6", "\u2026"},
	{"\u00e2\u00ac\u2026", "\u2b05"},
	{"\u00e3\u201a\u0152", "\u308c"},
	{"\u00e3\u201a\u02c6", "\u3088"},
	{"\u00e3\u201a\u2020", "\u3086"},
	{"\u00e3\u201a\u2030", "\u3089"},
	{"\u00e3\u201a\u20ac", "\u3080"},
	{"\u00e3\u201a\u201e", "\u3084"},
	{"\u00e3\u201a\u201c", "\u3093"},
	{"\u00e3\u201a\u201a", "\u3082"},
	{"\u00e3\u201a\u2019", "\u3092"},
	{"\u00e3\u201a\u0160", "\u308a"},
	{"\u00e4\u00b8\u0153", "\u4e1c"},
	{"\u00e5\u0152\u2014", "\u5317"},
	{"\u00e5\u017d\u00bb", "\u53bb"},
	{"\u00e6\u201c\u00a6", "\u64e6"},
	{"\u00e6\u0153\u00a8", "\u6728"},
	{"\u00e6\u02c6\u2018", "\u6211"},
	{"\u00e6\u02dc\u00af", "\u662f"},
	{"\u00e8\u00a5\u00bf", "\u897f"},
	{"\u00e9\u201d\u2122", "\u9519"},
	{"\u00ef\u00bc\u0161", "\uff1a"},
	{"\u00ef\u00bc\u0178", "\uff1f"},
	{"\u2020\u201c", "\u2013"},
	{"\u2020\u00a6", "\u2026"},
	{"\ucc44", "\u00e4"},
	{"\uccb4", "\u00fc"},
	{"\u89ba", "\u0131"},
	{"\uce74", "\u012b"},
	{"\u0e23\u0e07", "\u00e7"},
	{"\u0e23\u0097", "\u00d7"},
	{"\u0e23\u0e17", "\u00f7"},
	{"\u0e23\u0e16", "\u00f6"},
	{"\u0e23\u0e13", "\u00f3"},
	{"\u0e23\u0e1b", "\u00fb"},
	{"\u00f0\u0178\u02dc\u2022", "\U0001f615"},
	{"\u00f0\u0178\u02dc\u0160", "\U0001f60a"},
	{"\u00f0\u0178\u02dc\u2030", "\U0001f609"},
	{"\u00f0\u0178\u2122\u201e", "\U0001f644"},
	{"\u00f0\u0178\u2122\u201a", "\U0001f642"},
	{"\u011f\u0178\u02dc\u0160", "\U0001f60a"},
	{"\u011f\u0178\u2019\u00a1", "\U0001f4a1"},
	{"\u011f\u0178\u02dc\u2018", "\U0001f611"},
	{"\u011f\u0178\u02dc\u0160", "\U0001f60a"},
	{"\u00f0\u0178\u201d\u2013", "\U0001f516"},
	{"\u011f\u0178\u02dc\u2030", "\U0001f609"},
	{"\u00f0\u0178\u02dc\u0192", "\U0001f603"},
	{"\u00f0\u0178\u00a4\u2013", "\U0001f916"},
	{"\u00f0\u0178\u201c\u00b7", "\U0001f4f7"},
	{"\u00f0\u0178\u02dc\u201a", "\U0001f602"},
	{"\u00f0\u0178\u201c\u20ac", "\U0001f4c0"},
	{"\u00f0\u0178\u2019\u00bf", "\U0001f4bf"},
	{"\u00f0\u0178\u2019\u00af", "\U0001f4af"},
	{"\u00f0\u0178\u2019\u00a1", "\U0001f4a1"},
	{"\u00f0\u0178\u2018\u2039", "\U0001f44b"},
	{"\u00f0\u0178\u02dc\u00b1", "\U0001f631"},
	{"\u00f0\u0178\u02dc\u2018", "\U0001f611"},
	{"\u00f0\u0178\u02dc\u0160", "\U0001f60a"},
	{"\u00f0\u0178\u017d\u00a7", "\U0001f3a7"},
	{"\u00f0\u0178\u017d\u2122", "\U0001f399"},
	{"\u00f0\u0178\u017d\u00bc", "\U0001f3bc"},
	{"\u00f0\u0178\u201c\u00bb", "\U0001f4fb"},
	{"\u00f0\u0178\u00a4\u00b3", "\U0001f933"},
	{"\u00f0\u0178\u2018\u0152", "\U0001f44c"},
	{"\u00f0\u0178\u0161\u00a6", "\U0001f6a6"},
	{"\u00f0\u0178\u00a4\u2014", "\U0001f917"},
	{"\u00f0\u0178\u02dc\u201e", "\U0001f604"},
	{"\u00f0\u0178\u2018\u2030", "\U0001f449"},
	{"\u00f0\u0178\u201c\u00a1", "\U0001f4e1"},
	{"\u00f0\u0178\u201c\u00a3", "\U0001f4e3"},
	{"\u00f0\u0178\u201c\u00a2", "\U0001f4e2"},
	{"\u00f0\u0178\u201d\u0160", "\U0001f50a"},
	{"\u00f0\u0178\u02dc\u017d", "\U0001f60e"},
	{"\u00f0\u0178\u02dc\u2039", "\U0001f60b"},
	{"\u00f0\u0178\u02dc\u00b4", "\U0001f634"},
	{"\u00f0\u0178\u2018\u2018", "\U0001f451"},
	{"\u00f0\u0178\u2018\u2020", "\U0001f446"},
	{"\u00f0\u0178\u2018\u00ae", "\U0001f46e"},
	{"\u00f0\u0178\u201c\u201d", "\U0001f4d4"},
	{"\u00f0\u0178\u201c\u00bc", "\U0001f4fc"},
	{"\u00f0\u0178\u2021\u00a9", "\U0001f1e9"},
	{"\u00f0\u0178\u2021\u00aa", "\U0001f1ea"},
	{"\u00f0\u0178\u2021\u00ac", "\U0001f1ec"},
	{"\u00f0\u0178\u2021\u00a7", "\U0001f1e7"},
	{"\u00f0\u0178\u2021\u00ba", "\U0001f1fa"},
	{"\u00f0\u0178\u2021\u00b8", "\U0001f1f8"},
	{"\u00f0\u0178\u2022\u00b6", "\U0001f576"},
	{"\u00f0\u0178\u00a4\u201c", "\U0001f913"},
	{"\u00f0\u0178\u00a4\u201d", "\U0001f914"},
	{"\u00f0\u0178\u00a4\u00a9", "\U0001f929"},
	{"\u00f0\u0178\u00a5\u00ba", "\U0001f97a"},
	{"\u00f0\u0178\u2018\u2030", "\xed\xa0\xbd\xed\xb1\x89"},
	{"\u00f0\u0178\u2018\u2030", "\xed\xa0\xbd\xed\xb1\x89"},
	{"\xed\xa0\xbd\xed\xb1\x89", "\U0001f449"},

	// Legacy strings picked up literal tabs and newlines that were never
	// part of the text.
	{"\t", ""},
	{"\n", ""},
	// \u00a0 was rewritten inconsistently as either &nbsp; or a space.
	// Collapse the remaining ones to plain spaces.
	{"\u00a0", " "},
}
