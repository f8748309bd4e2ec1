package entities

import "strings"

// VoiceID is the caller-facing voice identifier accepted by the conversion endpoints
type VoiceID string

const (
	VoiceEnglish         VoiceID = "en"
	VoiceEnglishUS       VoiceID = "en-us"
	VoiceEnglishUK       VoiceID = "en-uk"
	VoiceEnglishUKFemale VoiceID = "en-uk-female"
	VoiceEnglishUKMale   VoiceID = "en-uk-male"
	VoiceEnglishAU       VoiceID = "en-au"
	VoiceEnglishCA       VoiceID = "en-ca"
	VoiceEnglishIN       VoiceID = "en-in"
	VoiceEnglishIE       VoiceID = "en-ie"
	VoiceEnglishZA       VoiceID = "en-za"
	VoiceSpanish         VoiceID = "es"
	VoiceSpanishMX       VoiceID = "es-mx"
	VoiceFrench          VoiceID = "fr"
	VoiceFrenchCA        VoiceID = "fr-ca"
	VoiceGerman          VoiceID = "de"
	VoiceItalian         VoiceID = "it"
	VoicePortugueseBR    VoiceID = "pt-br"
	VoicePortuguesePT    VoiceID = "pt-pt"
	VoiceIndonesian      VoiceID = "id"
	VoiceJapanese        VoiceID = "ja"
	VoiceHindi           VoiceID = "hi"
)

// DefaultVoice is used when a request does not name a voice
const DefaultVoice = VoiceEnglish

// SynthesisParameters is what a synthesis backend needs to pick a voice.
// Region is the Google Translate top-level domain that selects the accent,
// Locale is the BCP-47 tag used by backends that take one.
type SynthesisParameters struct {
	Language string `json:"language"`
	Region   string `json:"region"`
	Locale   string `json:"locale"`
}

// DefaultSynthesisParameters is the resolution of any unknown voice
var DefaultSynthesisParameters = SynthesisParameters{Language: "en", Region: "com", Locale: "en-US"}

// VoiceOption is one entry of the catalog served to clients
type VoiceOption struct {
	Label string  `json:"label"`
	Value VoiceID `json:"value"`
}

var voiceCatalog = []VoiceOption{
	{Label: "English (Default)", Value: VoiceEnglish},
	{Label: "English (US)", Value: VoiceEnglishUS},
	{Label: "English (UK)", Value: VoiceEnglishUK},
	{Label: "English (UK) - Female", Value: VoiceEnglishUKFemale},
	{Label: "English (UK) - Male", Value: VoiceEnglishUKMale},
	{Label: "English (Australia)", Value: VoiceEnglishAU},
	{Label: "English (Canada)", Value: VoiceEnglishCA},
	{Label: "English (India)", Value: VoiceEnglishIN},
	{Label: "English (Ireland)", Value: VoiceEnglishIE},
	{Label: "English (South Africa)", Value: VoiceEnglishZA},
	{Label: "Spanish (Spain)", Value: VoiceSpanish},
	{Label: "Spanish (Mexico)", Value: VoiceSpanishMX},
	{Label: "French (France)", Value: VoiceFrench},
	{Label: "French (Canada)", Value: VoiceFrenchCA},
	{Label: "German", Value: VoiceGerman},
	{Label: "Italian", Value: VoiceItalian},
	{Label: "Portuguese (Brazil)", Value: VoicePortugueseBR},
	{Label: "Portuguese (Portugal)", Value: VoicePortuguesePT},
	{Label: "Indonesian", Value: VoiceIndonesian},
	{Label: "Japanese", Value: VoiceJapanese},
	{Label: "Hindi", Value: VoiceHindi},
}

// The UK labels share one accent: the backend only discriminates by region.
var voiceTable = map[VoiceID]SynthesisParameters{
	VoiceEnglish:         DefaultSynthesisParameters,
	VoiceEnglishUS:       DefaultSynthesisParameters,
	VoiceEnglishUK:       {Language: "en", Region: "co.uk", Locale: "en-GB"},
	VoiceEnglishUKFemale: {Language: "en", Region: "co.uk", Locale: "en-GB"},
	VoiceEnglishUKMale:   {Language: "en", Region: "co.uk", Locale: "en-GB"},
	VoiceEnglishAU:       {Language: "en", Region: "com.au", Locale: "en-AU"},
	VoiceEnglishCA:       {Language: "en", Region: "ca", Locale: "en-CA"},
	VoiceEnglishIN:       {Language: "en", Region: "co.in", Locale: "en-IN"},
	VoiceEnglishIE:       {Language: "en", Region: "ie", Locale: "en-IE"},
	VoiceEnglishZA:       {Language: "en", Region: "co.za", Locale: "en-ZA"},
	VoiceSpanish:         {Language: "es", Region: "es", Locale: "es-ES"},
	VoiceSpanishMX:       {Language: "es", Region: "com.mx", Locale: "es-MX"},
	VoiceFrench:          {Language: "fr", Region: "fr", Locale: "fr-FR"},
	VoiceFrenchCA:        {Language: "fr", Region: "ca", Locale: "fr-CA"},
	VoiceGerman:          {Language: "de", Region: "de", Locale: "de-DE"},
	VoiceItalian:         {Language: "it", Region: "it", Locale: "it-IT"},
	VoicePortugueseBR:    {Language: "pt", Region: "com.br", Locale: "pt-BR"},
	VoicePortuguesePT:    {Language: "pt", Region: "pt", Locale: "pt-PT"},
	VoiceIndonesian:      {Language: "id", Region: "co.id", Locale: "id-ID"},
	VoiceJapanese:        {Language: "ja", Region: "co.jp", Locale: "ja-JP"},
	VoiceHindi:           {Language: "hi", Region: "co.in", Locale: "hi-IN"},
}

// VoiceCatalog returns a copy of the voice options in display order
func VoiceCatalog() []VoiceOption {
	out := make([]VoiceOption, len(voiceCatalog))
	copy(out, voiceCatalog)
	return out
}

// ResolveVoice maps a voice identifier to synthesis parameters.
// Unknown identifiers, including the empty string, get DefaultSynthesisParameters.
func ResolveVoice(id string) SynthesisParameters {
	if params, ok := voiceTable[normalizeVoiceID(id)]; ok {
		return params
	}
	return DefaultSynthesisParameters
}

// IsKnownVoice reports whether id has an explicit mapping
func IsKnownVoice(id string) bool {
	_, ok := voiceTable[normalizeVoiceID(id)]
	return ok
}

func normalizeVoiceID(id string) VoiceID {
	return VoiceID(strings.ToLower(strings.TrimSpace(id)))
}
