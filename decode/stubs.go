package decode

import "github.com/retrodasm/resourcedasm/rderr"

// unsupportedStub reports KindUnsupportedFeature, naming the source file
// this package would need to port to implement the format, rather than
// silently dropping the resource type or inventing an opcode table this
// package's grounding sources don't document in enough detail to trust.
func unsupportedStub(sourceFile string) decoderFunc {
	return func(_ []byte, _ int16, _ Options) (Artifact, error) {
		return Artifact{}, rderr.Newf(rderr.KindUnsupportedFeature, "not implemented, see %s for the original opcode table", sourceFile)
	}
}

// registerUnsupported adds the remaining game-specific sprite and map
// formats spec.md's dispatch table names, each of which only has its
// detailed opcode semantics in a source file outside this package's
// grounding set (or, for PBLK/Bungie-256, no surviving source file at
// all in that set) — honestly reported as unsupported rather than
// guessed at.
func registerUnsupported() {
	stubs := map[string]string{
		"btSP": "src/SpriteDecoders/Ambrosia-btSP-HrSp-SprD.cc",
		"HrSp": "src/SpriteDecoders/Ambrosia-btSP-HrSp-SprD.cc",
		"SprD": "src/SpriteDecoders/Ambrosia-btSP-HrSp-SprD.cc",
		"PBLK": "src/SpriteDecoders/Bungie-256.cc",
		"SHAP": "src/SpriteDecoders/PrinceOfPersia2-SHAP.cc",
		"shap": "src/SpriteDecoders/Spectre-shap.cc",
		"SHPD": "src/SpriteDecoders/Lemmings-PrinceOfPersia-SHPD.cc",
		"SPRT": "src/SpriteDecoders/SimCity2000-SPRT.cc",
		"sssf": "src/SpriteDecoders/StepOnIt-sssf.cc",
		"Spri": "src/SpriteDecoders/TheZone-Spri.cc",
		"Pak ": "src/SpriteDecoders/Bungie-256.cc",
		"GSIF": "src/SpriteDecoders/Greebles-GSIF.cc",
		"XMap": "src/SpriteDecoders/DinoParkTycoon-BMap-XMap-XBig.cc",
		"XBig": "src/SpriteDecoders/DinoParkTycoon-BMap-XMap-XBig.cc",
		"ppt#": "src/ResourceFormats.hh",
	}
	for resType, sourceFile := range stubs {
		dispatch[resType] = unsupportedStub(sourceFile)
	}
}
