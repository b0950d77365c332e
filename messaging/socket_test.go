package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uofuseismo/umps/authentication"
	"github.com/uofuseismo/umps/message"
)

func TestSocketOptionsValidate(t *testing.T) {
	valid := SocketOptions{
		Address:       "tcp://*:5555",
		ConnectOrBind: message.Bind,
		ZAP:           authentication.NewGrasslandsOptions(),
	}
	assert.NoError(t, valid.Validate())

	missingAddress := valid
	missingAddress.Address = ""
	assert.Error(t, missingAddress.Validate())

	negativeHWM := valid
	negativeHWM.SendHighWaterMark = -1
	assert.Error(t, negativeHWM.Validate())

	badZAP := valid
	badZAP.ZAP = authentication.ZAPOptions{Level: authentication.Strawhouse}
	assert.Error(t, badZAP.Validate())
}
