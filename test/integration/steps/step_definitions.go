package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/httpsniic/sistema-cmc-server/internal/application/usecase/auth"
	"github.com/httpsniic/sistema-cmc-server/internal/domain/entity"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/adapters"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/entrypoint/middleware"
	"github.com/httpsniic/sistema-cmc-server/internal/integration/persistence"
	"github.com/httpsniic/sistema-cmc-server/test/integration/mock"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theMasterUserExists() error {
	_, err := auth.NewEnsureMasterUserUseCase(
		persistence.NewUserRepository(t.db.DbConn),
		adapters.NewPasswordService(),
	).Execute(context.Background())
	return err
}

func (t *testContext) aUserWithRoleExists(username, role, password string) error {
	hash, err := adapters.NewPasswordService().HashPassword(password)
	if err != nil {
		return err
	}
	user := entity.NewUser(username, username+"@cmc.com", hash, entity.Role(role))
	return persistence.NewUserRepository(t.db.DbConn).Create(context.Background(), user)
}

func (t *testContext) iAmLoggedInAs(username, password string) error {
	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login as %s failed with %d: %v", username, t.response.status, t.response.body)
	}

	body, _ := t.response.body.(map[string]any)
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	if t.accessToken == "" {
		return fmt.Errorf("login response has no access token: %v", body)
	}
	return nil
}

func (t *testContext) iSelectTheStore(storeID string) error {
	t.headers[middleware.StoreHeader] = storeID
	return nil
}

func (t *testContext) theCurrentDateIs(value string) error {
	date, err := entity.ParseRecordDate(value)
	if err != nil {
		return err
	}
	t.clock.SetCurrentTime(date.Add(12 * time.Hour))
	return nil
}

// theStoreHasTheRecords saves a table with the columns date, revenue,
// purchase, group and supplier. Missing columns default to empty.
func (t *testContext) theStoreHasTheRecords(storeID string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("records table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	byPeriod := map[entity.Period][]*entity.DailyRecord{}
	for _, row := range table.Rows[1:] {
		values := map[string]string{}
		for i, cell := range row.Cells {
			values[header[i]] = cell.Value
		}

		record, err := entity.NewDailyRecord(entity.DailyRecordInput{
			StoreID:        storeID,
			Date:           values["date"],
			Revenue:        values["revenue"],
			PurchaseAmount: values["purchase"],
			GroupTag:       values["group"],
			SupplierTag:    values["supplier"],
		})
		if err != nil {
			return fmt.Errorf("invalid record row %v: %w", values, err)
		}
		byPeriod[record.Period()] = append(byPeriod[record.Period()], record)
	}

	repo := persistence.NewRecordRepository(t.db.DbConn)
	for period, records := range byPeriod {
		if err := repo.SaveAll(context.Background(), storeID, period, records); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theStoreHasTheGroup(storeID, name, target string) error {
	amount, err := entity.ParseAmount(target)
	if err != nil {
		return err
	}
	group := entity.NewGroup(storeID, name, "#e53935", &amount, "")
	return persistence.NewGroupRepository(t.db.DbConn).Create(context.Background(), group)
}

func (t *testContext) theEmailProviderAnswersWithStatus(status int) error {
	response := map[string]any{"id": "email_mock"}
	if status >= http.StatusBadRequest {
		response = map[string]any{"statusCode": status, "name": "mock_error", "message": "mocked failure"}
	}
	t.resend.SetResponse(-1, http.MethodPost, "/emails", status, response)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replaceTokenPlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replaceTokenPlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replaceTokenPlaceholders(path), payload)
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) replaceTokenPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	rowModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(rowModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theMetricsCacheShouldHold(quantity int) error {
	count, err := mock.CountKeys(mock.NewRedis(), "cmc:metrics:*")
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d cached periods, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(quantity int) error {
	if got := t.resend.RequestCount(http.MethodPost, "/emails"); got != quantity {
		return fmt.Errorf("expected %d emails sent, got %d", quantity, got)
	}
	return nil
}

func (t *testContext) theLastEmailSentShouldHaveTheSubject(subject string) error {
	body, err := t.resend.GetRequestBody(http.MethodPost, "/emails", -1)
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%v", body["subject"]); got != subject {
		return fmt.Errorf("expected subject %q, got %q", subject, got)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
