package username

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValidateSuite struct {
	suite.Suite
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateSuite))
}

func (s *ValidateSuite) TestAcceptsBasicNames() {
	for _, name := range []string{
		"Bob Smith",
		"alice",
		"player_1",
		"Dr. Who",
		"Jean-Luc",
		"a b",
	} {
		valid, reason := Validate(name)
		s.True(valid, "expected %q to be accepted: %s", name, reason)
		s.Empty(reason)
	}
}

func (s *ValidateSuite) TestRejectsEmpty() {
	valid, reason := Validate("")
	s.False(valid)
	s.Equal("Username cannot be empty", reason)
}

func (s *ValidateSuite) TestRejectsTooShort() {
	valid, reason := Validate("ab")
	s.False(valid)
	s.Equal("Username must be between 3 and 20 characters", reason)
}

func (s *ValidateSuite) TestRejectsTooLong() {
	valid, reason := Validate(strings.Repeat("a", 21))
	s.False(valid)
	s.Equal("Username must be between 3 and 20 characters", reason)
}

func (s *ValidateSuite) TestAcceptsBoundaryLengths() {
	valid, _ := Validate("abc")
	s.True(valid)

	valid, _ = Validate(strings.Repeat("a", 20))
	s.True(valid)
}

func (s *ValidateSuite) TestRejectsDisallowedCharacters() {
	for _, name := range []string{
		"Robert';DROP",
		"name!",
		"tab\tname",
		"new\nline",
		"emoji😀",
		"(parens)",
	} {
		valid, reason := Validate(name)
		s.False(valid, "expected %q to be rejected", name)
		s.Equal("Username contains invalid characters. Use only letters, numbers, spaces, and basic punctuation", reason)
	}
}

func (s *ValidateSuite) TestRejectsDangerousWords() {
	// These pass the character class but carry a blocked substring
	for _, name := range []string{
		"eval me",
		"exec it",
		"the System",
		"bash fan",
		"cmd line",
		"powershell 7",
		"my script",
		"function x",
	} {
		valid, reason := Validate(name)
		s.False(valid, "expected %q to be rejected", name)
		s.Equal("Username contains invalid characters", reason)
	}
}

func (s *ValidateSuite) TestDangerousWordsAreCaseSensitive() {
	// "system" lowercase is not in the blocked list
	valid, _ := Validate("system ok")
	s.True(valid)
}
