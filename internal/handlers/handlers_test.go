package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodbridge/donation-api/internal/cache"
	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/events"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/payment"
	"github.com/foodbridge/donation-api/internal/repository"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/foodbridge/donation-api/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const webhookSecret = "whsec_handlers"

// HandlerTestSuite drives the donation, hunger spot and fund handlers
// directly, with the auth context set the way RequireAuth would set it.
type HandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	donations *DonationHandler
	spots     *HungerSpotHandler
	funds     *FundHandler
	donor     *models.User
	volunteer *models.User
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = testutil.NewTestDB(suite.T())

	userRepo := repository.NewUserRepository(suite.db)
	suite.donations = NewDonationHandler(services.NewDonationService(repository.NewDonationRepository(suite.db), events.NopPublisher{}))
	suite.spots = NewHungerSpotHandler(services.NewHungerSpotService(repository.NewHungerSpotRepository(suite.db), userRepo))
	suite.funds = NewFundHandler(services.NewFundService(repository.NewFundRepository(suite.db), services.FundServiceConfig{
		WebhookSecret: webhookSecret,
		Currency:      "INR",
	}, cache.NopFundCache{}, events.NopPublisher{}))

	suite.donor = testutil.CreateUser(suite.T(), suite.db, "Donor", "donor@example.com", "secret1", models.RoleDonor)
	suite.volunteer = testutil.CreateUser(suite.T(), suite.db, "Volunteer", "volunteer@example.com", "secret1", models.RoleVolunteer)
}

// Helper function to create authenticated context
func (suite *HandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if user != nil {
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUserRole, user.Role)
	}

	return c, w
}

func (suite *HandlerTestSuite) mustJSON(v interface{}) []byte {
	body, err := json.Marshal(v)
	suite.Require().NoError(err)
	return body
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *HandlerTestSuite) submitDonation(servings int) uint64 {
	c, w := suite.createAuthContext(http.MethodPost, "/api/donations", suite.mustJSON(map[string]interface{}{
		"productName":    "Rice",
		"servings":       servings,
		"location":       "12 Market Road",
		"deliveryOption": "self",
	}), suite.donor)
	suite.donations.Submit(c)
	suite.Require().Equal(http.StatusCreated, w.Code)
	return uint64(suite.decode(w)["id"].(float64))
}

func (suite *HandlerTestSuite) TestSubmitDonation_ForcesVolunteerForLargeDonations() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/donations", suite.mustJSON(map[string]interface{}{
		"productName":    "Biryani",
		"servings":       120,
		"deliveryOption": "self",
	}), suite.donor)

	suite.donations.Submit(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), "volunteer", response["deliveryOption"])
	assert.Equal(suite.T(), "pending", response["status"])
}

func (suite *HandlerTestSuite) TestSubmitDonation_InvalidRequest() {
	for _, payload := range []map[string]interface{}{
		{"servings": 5},
		{"productName": "Rice"},
		{"productName": "Rice", "servings": -3},
		{"productName": "Rice", "servings": "ten"},
	} {
		c, w := suite.createAuthContext(http.MethodPost, "/api/donations", suite.mustJSON(payload), suite.donor)
		suite.donations.Submit(c)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, payload)
	}
}

func (suite *HandlerTestSuite) TestAcceptDonation_SecondAcceptConflicts() {
	donationID := suite.submitDonation(10)

	c, w := suite.createAuthContext(http.MethodPatch, "/api/donations/1/accept", nil, suite.volunteer)
	c.Set(constants.ContextKeyID, donationID)
	suite.donations.Accept(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "accepted", suite.decode(w)["status"])

	c, w = suite.createAuthContext(http.MethodPatch, "/api/donations/1/accept", nil, suite.volunteer)
	c.Set(constants.ContextKeyID, donationID)
	suite.donations.Accept(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Equal(suite.T(), "INVALID_STATE", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestAcceptDonation_NotFound() {
	c, w := suite.createAuthContext(http.MethodPatch, "/api/donations/99/accept", nil, suite.volunteer)
	c.Set(constants.ContextKeyID, uint64(99))
	suite.donations.Accept(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListDonations() {
	donationID := suite.submitDonation(10)
	suite.submitDonation(20)

	c, w := suite.createAuthContext(http.MethodGet, "/api/donations/pending", nil, suite.volunteer)
	suite.donations.ListPending(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), suite.decode(w)["donations"], 2)

	c, w = suite.createAuthContext(http.MethodPatch, "/api/donations/1/accept", nil, suite.volunteer)
	c.Set(constants.ContextKeyID, donationID)
	suite.donations.Accept(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/api/donations/accepted", nil, suite.volunteer)
	suite.donations.ListAccepted(c)
	assert.Len(suite.T(), suite.decode(w)["donations"], 1)

	c, w = suite.createAuthContext(http.MethodGet, "/api/donations/mine", nil, suite.donor)
	suite.donations.ListMine(c)
	assert.Len(suite.T(), suite.decode(w)["donations"], 2)
}

func (suite *HandlerTestSuite) TestHungerSpot_ReportAndModerate() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/hunger-spots", suite.mustJSON(map[string]interface{}{
		"description":  "Families near the depot",
		"locationText": "Bus depot",
		"lat":          19.07,
		"lng":          72.87,
	}), suite.volunteer)
	suite.spots.Report(c)
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := suite.decode(w)
	assert.Equal(suite.T(), "Volunteer", created["reportedBy"].(map[string]interface{})["name"])
	spotID := uint64(created["id"].(float64))

	// No body: approve without assigning anyone.
	c, w = suite.createAuthContext(http.MethodPatch, "/api/admin/hunger-spots/1/approve", nil, nil)
	c.Set(constants.ContextKeyID, spotID)
	suite.spots.Approve(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "approved", suite.decode(w)["status"])

	c, w = suite.createAuthContext(http.MethodPatch, "/api/admin/hunger-spots/1/reject", nil, nil)
	c.Set(constants.ContextKeyID, spotID)
	suite.spots.Reject(c)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/api/hunger-spots", nil, nil)
	suite.spots.ListPublic(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Len(suite.T(), suite.decode(w)["hungerSpots"], 1)

	c, w = suite.createAuthContext(http.MethodGet, "/api/hunger-spots?status=bogus", nil, nil)
	suite.spots.ListPublic(c)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestHungerSpot_AdminCreateHasNoReporter() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/admin/hunger-spots", suite.mustJSON(map[string]interface{}{
		"description":  "Shelter",
		"locationText": "Station Road",
		"lat":          12.5,
	}), nil)
	suite.spots.Create(c)

	suite.Require().Equal(http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Nil(suite.T(), response["reportedBy"])
	assert.Nil(suite.T(), response["lat"])
}

func (suite *HandlerTestSuite) TestFundWebhook() {
	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_h1","amount":25050,"currency":"INR","notes":[]}}}}`)

	send := func(signatureHeader, signature string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/funds/webhook", bytes.NewReader(body))
		c.Request.Header.Set(signatureHeader, signature)
		suite.funds.Webhook(c)
		return w
	}

	w := send(constants.SignatureHeader, "deadbeef")
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), "SIGNATURE_MISMATCH", suite.decode(w)["code"])

	w = send(constants.RazorpaySignatureHeader, payment.Sign(body, webhookSecret))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Equal(suite.T(), true, response["created"])
	assert.Equal(suite.T(), 250.5, response["fund"].(map[string]interface{})["amount"])

	w = send(constants.SignatureHeader, payment.Sign(body, webhookSecret))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), false, suite.decode(w)["created"])

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Fund{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *HandlerTestSuite) TestFundConfirmAndTotal() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/funds/confirm", suite.mustJSON(map[string]interface{}{
		"amount":    99.99,
		"paymentId": "pay_c1",
		"donorName": "Meera",
	}), nil)
	suite.funds.Confirm(c)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/api/funds/confirm", suite.mustJSON(map[string]interface{}{
		"amount":    99.99,
		"paymentId": "pay_c1",
	}), nil)
	suite.funds.Confirm(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodGet, "/api/funds/total", nil, nil)
	suite.funds.Total(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"total":99.99,"currency":"INR"}`, w.Body.String())

	c, w = suite.createAuthContext(http.MethodGet, "/api/funds?limit=5", nil, nil)
	suite.funds.List(c)
	assert.Len(suite.T(), suite.decode(w)["funds"], 1)
}

func (suite *HandlerTestSuite) TestCreateOrder_GatewayNotConfigured() {
	c, w := suite.createAuthContext(http.MethodPost, "/api/funds/order", suite.mustJSON(map[string]interface{}{"amount": 100}), nil)
	suite.funds.CreateOrder(c)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

// TestSuite runs the test suite
func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
