package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allanpk716/docx_standards/internal/config"
	"github.com/allanpk716/docx_standards/internal/correction"
	"github.com/allanpk716/docx_standards/internal/domain"
)

func on() config.Toggle {
	enabled := true
	return config.Toggle{Enabled: &enabled}
}

func allExclusions() *config.SpellOut {
	return &config.SpellOut{
		Exclusions: []string{
			config.ExcludePercentages, config.ExcludeCurrency,
			config.ExcludeYears, config.ExcludePhoneNumbers,
		},
	}
}

func mustEngine(t *testing.T, cs *config.CommunicationsStandards) *Engine {
	t.Helper()
	engine, err := NewEngine(cs)
	require.NoError(t, err)
	return engine
}

func run(engine *Engine, text string) (string, *correction.Log) {
	log := correction.NewLog()
	return engine.Apply(text, "paragraph 1", log), log
}

func TestEngine_DisabledRulesAreNoOps(t *testing.T) {
	off := false
	standards := []*config.CommunicationsStandards{
		nil,
		{},
		{
			Times:       &config.Toggle{Enabled: &off},
			Punctuation: &config.Punctuation{SingleSpaces: &config.Toggle{Check: "manual"}},
			Numbers:     &config.Numbers{SpellOut: allExclusions()},
			Branding:    &config.Branding{GiaPlatform: &config.Trademark{Toggle: on()}},
		},
	}

	text := "A & B  met at 3:00 PM with 5 people and Gia."
	for _, cs := range standards {
		engine := mustEngine(t, cs)
		got, log := run(engine, text)
		assert.Equal(t, text, got)
		assert.Zero(t, log.Count())
		assert.Empty(t, engine.Names())
	}
}

func TestEngine_EachDisabledRuleIsNoOp(t *testing.T) {
	off := config.Toggle{Enabled: new(bool)}
	text := "Albany, N.Y. & Troy  send e-mail about healthcare at 3:00 PM to 5 MVP Health Plan members using Gia"

	tests := []struct {
		name string
		cs   *config.CommunicationsStandards
	}{
		{"state_abbreviations", &config.CommunicationsStandards{
			StateAbbreviations: &config.StateAbbreviations{
				Toggle:       off,
				Replacements: []config.PatternReplacement{{Pattern: `\bN\.Y\.`, Correct: "NY"}},
			},
		}},
		{"no_ampersands", &config.CommunicationsStandards{
			Punctuation: &config.Punctuation{NoAmpersands: &config.Ampersands{Toggle: off, ReplaceWith: "and"}},
		}},
		{"single_spaces", &config.CommunicationsStandards{
			Punctuation: &config.Punctuation{SingleSpaces: &off},
		}},
		{"digital_terms", &config.CommunicationsStandards{
			DigitalTerms: &config.Terminology{
				Toggle:       off,
				Replacements: []config.TermReplacement{{Wrong: "e-mail", Correct: "email"}},
			},
		}},
		{"times", &config.CommunicationsStandards{Times: &off}},
		{"numbers", &config.CommunicationsStandards{
			Numbers: &config.Numbers{Toggle: off, SpellOut: allExclusions(), FormatPhones: &config.Toggle{Check: "auto"}},
		}},
		{"healthcare_terms", &config.CommunicationsStandards{
			HealthcareTerms: &config.Terminology{
				Toggle:       off,
				Replacements: []config.TermReplacement{{Wrong: "healthcare", Correct: "health care"}},
			},
		}},
		{"branding", &config.CommunicationsStandards{
			Branding: &config.Branding{
				Toggle:         off,
				MVPTerminology: []config.PatternReplacement{{Pattern: "MVP Health Plan", Correct: "MVP Health Care"}},
				GiaPlatform:    &config.Trademark{Toggle: on()},
			},
		}},
		{"gia_platform", &config.CommunicationsStandards{
			Branding: &config.Branding{Toggle: on(), GiaPlatform: &config.Trademark{Toggle: off}},
		}},
		{"headings", &config.CommunicationsStandards{
			Headings: &config.Headings{Toggle: off, TitleCaseLevels: []int{1, 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := mustEngine(t, tt.cs)
			assert.Empty(t, engine.Names())

			log := correction.NewLog()
			assert.Equal(t, text, engine.Apply(text, "paragraph 1", log))
			assert.Equal(t, text, engine.ApplyHeading(text, 1, "heading 1", log))
			assert.Zero(t, log.Count())
		})
	}
}

func TestEngine_LeftoverPlaceholderKeepsOriginal(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		StateAbbreviations: &config.StateAbbreviations{
			Toggle:       on(),
			Replacements: []config.PatternReplacement{{Pattern: "SHIELD", Correct: "X"}},
		},
		Punctuation: &config.Punctuation{SingleSpaces: &config.Toggle{Check: "auto"}},
	})

	input := "See [note  5]  and  SHIELD rules"
	got, log := run(engine, input)
	assert.Equal(t, input, got)
	assert.Zero(t, log.Count())

	got, log = run(engine, "No  brackets, SHIELD here")
	assert.Equal(t, "No brackets, X here", got)
	assert.Equal(t, 2, log.Count())
}

func TestEngine_PhoneFormat(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Numbers: &config.Numbers{Toggle: on(), FormatPhones: &config.Toggle{Check: "auto"}},
	})

	tests := []struct {
		input    string
		expected string
		phones   int
	}{
		{"Call (518) 555-1234 today", "Call 5185551234 today", 1},
		{"Call 518.555.1234 or 1-800-555-1234.", "Call 5185551234 or 1-8005551234.", 2},
		{"Dial 555-1234 for 2 options", "Dial 555-1234 for two options", 0},
		{"Call 5185551234", "Call 5185551234", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, log := run(engine, tt.input)
			assert.Equal(t, tt.expected, got)

			phones := 0
			for _, entry := range log.Entries() {
				if entry.Rule == NamePhoneFormat {
					phones++
				}
			}
			assert.Equal(t, tt.phones, phones)
		})
	}
}

func TestEngine_StateAbbreviations(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		StateAbbreviations: &config.StateAbbreviations{
			Toggle: on(),
			Replacements: []config.PatternReplacement{
				{Pattern: `\bN\.Y\.`, Correct: "NY"},
				{Pattern: `\b(Vt)\.`, Correct: "VT"},
			},
		},
	})

	got, log := run(engine, "Albany, N.Y. and Rutland, N.Y. and Burlington, Vt.")
	assert.Equal(t, "Albany, NY and Rutland, NY and Burlington, VT", got)
	assert.Equal(t, []domain.RuleCount{{Rule: NameStateAbbreviation, Count: 3}}, log.Summary())
}

func TestEngine_Ampersand(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Punctuation: &config.Punctuation{
			NoAmpersands: &config.Ampersands{
				Toggle:      on(),
				ReplaceWith: "and",
				Exceptions:  []string{"AT&T"},
				Window:      10,
			},
		},
	})

	tests := []struct {
		input    string
		expected string
		count    int
	}{
		{"Salt & pepper", "Salt and pepper", 1},
		{"Call AT&T today. Salt & pepper", "Call AT&T today. Salt and pepper", 1},
		{"AT&T & Verizon", "AT&T & Verizon", 0},
		{"Research&Development", "Research and Development", 1},
		{"Q & A & more", "Q and A and more", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, log := run(engine, tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.count, log.Count())
		})
	}
}

func TestEngine_DoubleSpaces(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Punctuation: &config.Punctuation{SingleSpaces: &config.Toggle{Check: "auto"}},
	})

	got, log := run(engine, "one  two   three four")
	assert.Equal(t, "one two three four", got)
	assert.Equal(t, 2, log.Count())
}

func TestEngine_TerminologyPreservesCapitalization(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		HealthcareTerms: &config.Terminology{
			Toggle:       on(),
			Replacements: []config.TermReplacement{{Wrong: "healthcare", Correct: "health care"}},
		},
		DigitalTerms: &config.Terminology{
			Toggle:       on(),
			Replacements: []config.TermReplacement{{Wrong: "e-mail", Correct: "email"}},
		},
	})

	got, log := run(engine, "Healthcare matters. Send an E-mail about HEALTHCARE and healthcare.")
	assert.Equal(t, "Health care matters. Send an Email about Health care and health care.", got)

	entries := log.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, domain.Correction{Rule: NameDigitalTerms, Original: "E-mail", Corrected: "Email", Location: "paragraph 1"}, entries[0])
	assert.Equal(t, "Healthcare", entries[1].Original)
	assert.Equal(t, "HEALTHCARE", entries[2].Original)
	assert.Equal(t, "healthcare", entries[3].Original)
}

func TestEngine_Times(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{Times: &config.Toggle{Check: "auto"}})

	tests := []struct {
		input    string
		expected string
		rules    []string
	}{
		{"Call at 3:00 PM", "Call at 3 pm", []string{NameTimeFormat}},
		{"Open 8:00 AM - 5:00 PM daily", "Open 8 am–5 pm daily", []string{NameTimeRange}},
		{"Open 8 AM to 5 PM.", "Open 8 am–5 pm.", []string{NameTimeRange}},
		{"Meet at 9:30 am", "Meet at 9:30 am", nil},
		{"Meet at 3 p.m. on Friday", "Meet at 3 pm on Friday", []string{NameTimeFormat}},
		{"Ends at 3:00 P.M. Call us", "Ends at 3 pm. Call us", []string{NameTimeFormat}},
		{"From 8:00 AM - 5:00 PM or after 6:00 PM", "From 8 am–5 pm or after 6 pm", []string{NameTimeRange, NameTimeFormat}},
		{`He said "Come at 5 p.m." she left`, `He said "Come at 5 pm." she left`, []string{NameTimeFormat}},
		{"Open (until 5 p.m.) Then close", "Open (until 5 pm.) Then close", []string{NameTimeFormat}},
		{"Open (until 5 p.m.) then close", "Open (until 5 pm) then close", []string{NameTimeFormat}},
		{"Three amigos", "Three amigos", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, log := run(engine, tt.input)
			assert.Equal(t, tt.expected, got)

			var rules []string
			for _, entry := range log.Entries() {
				rules = append(rules, entry.Rule)
			}
			assert.Equal(t, tt.rules, rules)

			again, log := run(engine, got)
			assert.Equal(t, got, again)
			assert.Zero(t, log.Count())
		})
	}
}

func TestEngine_Numbers(t *testing.T) {
	excluding := mustEngine(t, &config.CommunicationsStandards{
		Numbers: &config.Numbers{Toggle: on(), SpellOut: allExclusions()},
	})
	plain := mustEngine(t, &config.CommunicationsStandards{
		Numbers: &config.Numbers{Toggle: on()},
	})

	tests := []struct {
		name     string
		engine   *Engine
		input    string
		expected string
	}{
		{"spell out", excluding, "5", "five"},
		{"between range", excluding, "999", "999"},
		{"threshold", excluding, "1000", "1,000"},
		{"ten", excluding, "Pick 10 items", "Pick 10 items"},
		{"year excluded", excluding, "In 2024 we grew", "In 2024 we grew"},
		{"year not listed", plain, "In 2024 we grew", "In 2,024 we grew"},
		{"year bound exclusive", excluding, "Since 1900", "Since 1,900"},
		{"grouped literal", excluding, "We have 1,500 members", "We have 1,500 members"},
		{"decimal", excluding, "Rated 3.5 stars", "Rated 3.5 stars"},
		{"percent", excluding, "Save 5% today", "Save 5% today"},
		{"percent word", excluding, "Save 5 percent", "Save 5 percent"},
		{"percent not listed", plain, "Save 5% today", "Save five% today"},
		{"currency", excluding, "It costs $5", "It costs $5"},
		{"long digits", excluding, "Call 5551234", "Call 5551234"},
		{"phone", excluding, "Call 518-555-1234", "Call 518-555-1234"},
		{"phone not listed", plain, "Call 518-555-1234", "Call 518-555-1,234"},
		{"clock", excluding, "Meet at 3:30 or 3 pm", "Meet at 3:30 or 3 pm"},
		{"leading zero", excluding, "Zip 01234", "Zip 01234"},
		{"sentence", excluding, "We offer 3 plans for 12000 members.", "We offer three plans for 12,000 members."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := run(tt.engine, tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEngine_NumberEntries(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Numbers: &config.Numbers{Toggle: on(), AddCommas: &config.AddCommas{Threshold: 10000}},
	})

	got, log := run(engine, "2 of 5000 and 25000")
	assert.Equal(t, "two of 5000 and 25,000", got)
	assert.Equal(t, []domain.RuleCount{
		{Rule: NameNumberSpelling, Count: 1},
		{Rule: NameNumberCommas, Count: 1},
	}, log.Summary())
}

func TestEngine_Branding(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Branding: &config.Branding{
			Toggle:         on(),
			MVPTerminology: []config.PatternReplacement{{Pattern: "MVP Healthcare", Correct: "MVP Health Care"}},
			GiaPlatform:    &config.Trademark{Toggle: on(), Term: "Gia", Mark: "®"},
		},
	})

	got, log := run(engine, "Welcome to mvp healthcare. Gia helps you. Ask Gia anything. Giant steps.")
	assert.Equal(t, "Welcome to MVP Health Care. Gia® helps you. Ask Gia anything. Giant steps.", got)
	assert.Equal(t, []domain.RuleCount{
		{Rule: NameBranding, Count: 1},
		{Rule: NameTrademark, Count: 1},
	}, log.Summary())

	again, log := run(engine, got)
	assert.Equal(t, got, again)
	assert.Zero(t, log.Count())

	untouched, log := run(engine, "Ask Gia, then Gia® answers.")
	assert.Equal(t, "Ask Gia, then Gia® answers.", untouched)
	assert.Zero(t, log.Count())
}

func TestEngine_ShieldedContentUntouched(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Punctuation: &config.Punctuation{
			NoAmpersands: &config.Ampersands{Toggle: on(), ReplaceWith: "and"},
			SingleSpaces: &config.Toggle{Check: "auto"},
		},
		Numbers: &config.Numbers{Toggle: on(), SpellOut: allExclusions()},
	})

	input := "Visit https://example.com/a&b?id=5 or [see  3 notes] & <tag 7>  now"
	got, _ := run(engine, input)
	assert.Equal(t, "Visit https://example.com/a&b?id=5 or [see  3 notes] and <tag 7> now", got)
}

func TestEngine_FullTemplateOrder(t *testing.T) {
	cfg, err := config.NewConfigManager().GenerateTemplate(config.TemplateFull)
	require.NoError(t, err)
	engine := mustEngine(t, cfg.CommunicationsStandards)

	assert.Equal(t, []string{
		NameStateAbbreviation, NameAmpersand, NameDoubleSpaces, NameDigitalTerms,
		NameTimeFormat, NameNumberSpelling, NameHealthcareTerms, NameBranding,
		NameTrademark, NameHeadingCase,
	}, engine.Names())

	input := "We offer 3 plans & healthcare at www.example.com/3&4 [see 5 notes]  today."
	got, log := run(engine, input)
	assert.Equal(t, "We offer three plans and health care at www.example.com/3&4 [see 5 notes] today.", got)
	assert.Equal(t, []domain.RuleCount{
		{Rule: NameAmpersand, Count: 1},
		{Rule: NameDoubleSpaces, Count: 1},
		{Rule: NameNumberSpelling, Count: 1},
		{Rule: NameHealthcareTerms, Count: 1},
	}, log.Summary())
}

func TestEngine_FullTemplateBranding(t *testing.T) {
	cfg, err := config.NewConfigManager().GenerateTemplate(config.TemplateFull)
	require.NoError(t, err)
	engine := mustEngine(t, cfg.CommunicationsStandards)

	got, log := run(engine, "Welcome to MVP Healthcare and MVP Health Plan.")
	assert.Equal(t, "Welcome to MVP Health Care and MVP Health Care.", got)
	assert.Equal(t, []domain.RuleCount{
		{Rule: NameHealthcareTerms, Count: 1},
		{Rule: NameBranding, Count: 2},
	}, log.Summary())
}

func TestEngine_Headings(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Headings: &config.Headings{Toggle: on(), TitleCaseLevels: []int{1, 2}},
	})

	log := correction.NewLog()
	assert.Equal(t, "Benefits of the MVP Plan", engine.ApplyHeading("benefits of the MVP plan", 1, "heading 1", log))
	assert.Equal(t, "Your member ID card", engine.ApplyHeading("Your Member ID Card", 3, "heading 2", log))
	assert.Equal(t, "body text stays", engine.ApplyHeading("body text stays", 0, "paragraph 3", log))
	assert.Equal(t, "Visit www.Example.com Today", engine.ApplyHeading("visit www.Example.com today", 2, "heading 4", log))

	require.Equal(t, 3, log.Count())
	assert.Equal(t, domain.Correction{
		Rule:      NameHeadingCase,
		Original:  "visit www.Example.com today",
		Corrected: "Visit www.Example.com Today",
		Location:  "heading 4",
	}, log.Entries()[2])
}

func TestEngine_BlankParagraph(t *testing.T) {
	engine := mustEngine(t, &config.CommunicationsStandards{
		Punctuation: &config.Punctuation{SingleSpaces: &config.Toggle{Check: "auto"}},
	})

	got, log := run(engine, "    ")
	assert.Equal(t, "    ", got)
	assert.Zero(t, log.Count())

	assert.Equal(t, "a b", engine.Apply("a  b", "", nil))
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cs   *config.CommunicationsStandards
	}{
		{
			name: "bad regexp",
			cs: &config.CommunicationsStandards{
				StateAbbreviations: &config.StateAbbreviations{
					Toggle:       on(),
					Replacements: []config.PatternReplacement{{Pattern: "(N.Y.", Correct: "NY"}},
				},
			},
		},
		{
			name: "missing wrong",
			cs: &config.CommunicationsStandards{
				DigitalTerms: &config.Terminology{
					Toggle:       on(),
					Replacements: []config.TermReplacement{{Correct: "email"}},
				},
			},
		},
		{
			name: "missing replace_with",
			cs: &config.CommunicationsStandards{
				Punctuation: &config.Punctuation{NoAmpersands: &config.Ampersands{Toggle: on()}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.cs)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func BenchmarkEngine_Apply(b *testing.B) {
	cfg, err := config.NewConfigManager().GenerateTemplate(config.TemplateFull)
	require.NoError(b, err)
	engine, err := NewEngine(cfg.CommunicationsStandards)
	require.NoError(b, err)

	text := "Open 8:00 AM - 5:00 PM in Albany, N.Y. & online at www.example.com. We serve 12000 members, 3 plans, and healthcare for all.  Ask Gia."
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Apply(text, "", correction.NewLog())
	}
}
