package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Live, ParseEnvironment("live"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Test, ParseEnvironment("LIVE"))
	assert.Equal(t, Test, ParseEnvironment(""))
}

func TestEnvironment_URL(t *testing.T) {
	assert.Equal(t, "https://pal-test.adyen.com/pal/adapter/httppost", Test.URL(ModificationRest))
	assert.Equal(t, "https://pal-live.adyen.com/pal/adapter/httppost", Live.URL(ModificationRest))
	assert.Equal(t, "https://live.adyen.com/hpp/pay.shtml", Live.URL(HPPSingle))
	for _, environment := range []Environment{Test, Live} {
		for _, endpoint := range []Endpoint{CustomerArea, HPPDetails, HPPMulti, HPPSingle, Directory, ModificationRest} {
			assert.NotEmpty(t, environment.URL(endpoint), "%s %s", environment, endpoint)
		}
	}
}
