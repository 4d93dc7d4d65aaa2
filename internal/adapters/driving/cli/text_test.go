package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCmd_Use(t *testing.T) {
	assert.Equal(t, "text [file]", textCmd.Use)
}

func TestTextCmd_Outline(t *testing.T) {
	setupTestConfig(t)
	path := writeFixture(t, fixtureMap)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"text", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "root\n  Test\n  test\n", buf.String())
}

func TestTextCmd_StartNode(t *testing.T) {
	setupTestConfig(t)
	path := writeFixture(t, fixtureMap)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"text", "--id", "ID_101", path})
	defer func() {
		rootCmd.SetArgs(nil)
		textNodeID = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "Test\n", buf.String())
}

func TestTextCmd_UnknownNode(t *testing.T) {
	setupTestConfig(t)
	path := writeFixture(t, fixtureMap)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"text", "--id", "ID_999", path})
	defer func() {
		rootCmd.SetArgs(nil)
		textNodeID = ""
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
