package chat

import "testing"

func TestClassify_ContextAlwaysWins(t *testing.T) {
	inputs := []string{
		"Floyd Mayweather",
		"what is his reach?",
		"upcoming fights",
		"random words",
	}
	for _, in := range inputs {
		if got := Classify(in, true); got != IntentFighterQA {
			t.Errorf("Classify(%q, context) = %q; want fighter_qa", in, got)
		}
	}
}

func TestClassify_GeneralQuestionVocabulary(t *testing.T) {
	general := []string{
		"What is a southpaw?",
		"when is the next heavyweight bout",
		"Who holds the WBC belt?",
		"why do boxers skip rope",
		"How are rounds scored?",
		"where was the rumble in the jungle",
		"which division is canelo in",
		"tell me about the mexican style",
		"list current champions",
		"show me pound for pound rankings",
		"give a rundown of judging criteria",
		"upcoming cards this month",
		"next big event",
		"schedule for december",
		"groq powered analysis",
		"fights this weekend",
		// Prefix match, not word match.
		"whatever happened to prichard colon",
		// Substring triggers.
		"Did Ali ever fight Frazier?",
		"is GROQ fast",
	}
	for _, in := range general {
		if got := Classify(in, false); got != IntentGeneralQA {
			t.Errorf("Classify(%q) = %q; want general_qa", in, got)
		}
	}
}

func TestClassify_NamesFallThroughToSearch(t *testing.T) {
	searches := []string{
		"Floyd Mayweather",
		"canelo",
		"Naoya Inoue",
		"usyk",
	}
	for _, in := range searches {
		if got := Classify(in, false); got != IntentSearch {
			t.Errorf("Classify(%q) = %q; want search", in, got)
		}
	}
}
