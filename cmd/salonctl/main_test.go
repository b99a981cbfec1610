package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchiveCommand_UsageNamesCompletedStatus(t *testing.T) {
	cmd := archiveCommand()

	assert.Equal(t, "archive", cmd.Name)
	assert.Contains(t, cmd.Usage, "Realizado")
}
