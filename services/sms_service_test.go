package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessages struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func newTestSMSSender(client messageCreator) *TwilioSMSSender {
	s := NewTwilioSMSSender(TwilioConfig{
		FromNumber:  "+15005550006",
		CountryCode: "+351",
		Business:    "TIO BARBAS!",
		Contact:     "+351912050222",
	}, quietLogger())
	s.client = client
	return s
}

func TestTwilioSMSSender_NormalizesPhone(t *testing.T) {
	fake := &fakeMessages{}
	s := newTestSMSSender(fake)

	err := s.SendReminder(context.Background(), "912345678", AppointmentDetails{
		Name:     "Ana",
		Date:     time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Time:     "10:00",
		Location: "Rua do Camelo",
	})
	require.NoError(t, err)
	require.Len(t, fake.params, 1)

	p := fake.params[0]
	assert.Equal(t, "+351912345678", *p.To)
	assert.Equal(t, "+15005550006", *p.From)
	assert.Contains(t, *p.Body, "Olá Ana")
	assert.Contains(t, *p.Body, "Data: 02/06/2024")
	assert.Contains(t, *p.Body, "Hora: 10:00")
	assert.Contains(t, *p.Body, "Local: Rua do Camelo")
	assert.Contains(t, *p.Body, "TIO BARBAS!")
}

func TestTwilioSMSSender_KeepsInternationalPrefix(t *testing.T) {
	fake := &fakeMessages{}
	s := newTestSMSSender(fake)

	require.NoError(t, s.SendReminder(context.Background(), "+447700900123", AppointmentDetails{}))
	assert.Equal(t, "+447700900123", *fake.params[0].To)
}

func TestTwilioSMSSender_Errors(t *testing.T) {
	fake := &fakeMessages{err: errors.New("21211 invalid 'To' number")}
	s := newTestSMSSender(fake)
	assert.Error(t, s.SendReminder(context.Background(), "912345678", AppointmentDetails{}))

	invalid := &fakeMessages{}
	s = newTestSMSSender(invalid)
	assert.Error(t, s.SendReminder(context.Background(), "not-a-phone", AppointmentDetails{}))
	assert.Empty(t, invalid.params, "invalid numbers never reach the provider")
}
