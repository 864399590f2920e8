package formatguard

import "testing"

func TestCheckStrictValid(t *testing.T) {
	s := "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	out := Check(s)
	if !out.Valid || out.Recovered {
		t.Fatalf("got %+v, want Valid strict", out)
	}
	if out.GuardPath != GuardPathStrict {
		t.Errorf("GuardPath = %q, want %q", out.GuardPath, GuardPathStrict)
	}
	if len(out.Cues) != 1 {
		t.Fatalf("len(Cues) = %d, want 1", len(out.Cues))
	}
}

func TestCheckRecoversFromFencedBlock(t *testing.T) {
	s := "sure, here you go:\n```srt\n1\n00:00:01,000 --> 00:00:02,000\n你好\n```"
	out := Check(s)
	if !out.Valid || !out.Recovered {
		t.Fatalf("got %+v, want Recovered", out)
	}
	if out.GuardPath != GuardPathCodeBlock {
		t.Errorf("GuardPath = %q, want %q", out.GuardPath, GuardPathCodeBlock)
	}
	if len(out.Cues) != 1 || out.Cues[0].Content != "你好" {
		t.Fatalf("Cues = %+v, want one cue with content 你好", out.Cues)
	}
}

func TestCheckRecoversFromPreamble(t *testing.T) {
	s := "Here is the corrected subtitle:\n\n1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	out := Check(s)
	if !out.Valid || !out.Recovered {
		t.Fatalf("got %+v, want Recovered", out)
	}
	if out.GuardPath != GuardPathFirstHeader {
		t.Errorf("GuardPath = %q, want %q", out.GuardPath, GuardPathFirstHeader)
	}
}

func TestCheckInvalidNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"sorry, cannot comply",
		"```\nnot srt at all\n```",
		"\x00\x01garbage",
	}
	for _, s := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Check(%q) panicked: %v", s, r)
				}
			}()
			out := Check(s)
			if out.Valid {
				t.Errorf("Check(%q) = Valid, want Invalid", s)
			}
		}()
	}
}
