package handler

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"meterflow/internal/d0010"
	"meterflow/internal/service"
)

// HealthCheck reports whether the database dependency is reachable.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness probe with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// pagingParams parses limit and offset. On a malformed value it writes the
// error response itself and reports ok=false.
func pagingParams(c *fiber.Ctx) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil {
		writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}

// idParam parses the :id path segment as a positive integer, writing the
// error response itself when it is not one.
func idParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return 0, false
	}
	return id, true
}

// parseDateParam accepts YYYY-MM-DD, taken as midnight UK local time the
// same way flow timestamps are read, or a full RFC 3339 timestamp.
func parseDateParam(v string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", v, d0010.Location()); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

// readingQuery collects the reading list filters from the query string.
func readingQuery(c *fiber.Ctx) (service.ReadingQuery, bool) {
	var q service.ReadingQuery

	if v := c.Query("meter_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(c, fiber.StatusBadRequest, "INVALID_METER_ID", "invalid meter_id")
			return q, false
		}
		q.MeterID = id
	}
	if v := c.Query("meter_point_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(c, fiber.StatusBadRequest, "INVALID_METER_POINT_ID", "invalid meter_point_id")
			return q, false
		}
		q.MeterPointID = id
	}
	q.MPAN = c.Query("mpan")
	q.MeterSerial = c.Query("serial")
	q.RegisterID = c.Query("register_id")
	q.ReadingType = c.Query("reading_type")

	if v := c.Query("date_from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid date_from, use YYYY-MM-DD or RFC 3339")
			return q, false
		}
		q.DateFrom = t
	}
	if v := c.Query("date_to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid date_to, use YYYY-MM-DD or RFC 3339")
			return q, false
		}
		q.DateTo = t
	}
	return q, true
}

// UploadFlowFile accepts a D0010 file as multipart/form-data (field name:
// file) and imports it. With ?dry_run=true the file is only validated.
func UploadFlowFile(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".uff") {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "flow files must have a .uff extension")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		dryRun := c.QueryBool("dry_run", false)
		res, err := svc.ImportReader(c.UserContext(), f, filepath.Base(fh.Filename), dryRun)
		if err != nil {
			return serviceError(c, err)
		}

		status := fiber.StatusCreated
		if dryRun {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(res)
	}
}

// ListFlowFiles returns imported flow files, newest first.
func ListFlowFiles(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagingParams(c)
		if !ok {
			return nil
		}
		res, err := svc.ListFlowFiles(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetFlowFile returns one flow file with its reading count.
func GetFlowFile(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		d, err := svc.GetFlowFile(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

// DownloadFlowFile streams the archived original content of a flow file.
func DownloadFlowFile(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		rc, d, err := svc.DownloadFlowFile(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		// fasthttp closes the stream after the response is sent.
		c.Set(fiber.HeaderContentType, "text/plain")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+d.Filename+`"`)
		return c.SendStream(rc)
	}
}

// ListMeterPoints returns meter points ordered by MPAN.
func ListMeterPoints(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagingParams(c)
		if !ok {
			return nil
		}
		res, err := svc.ListMeterPoints(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetMeterPoint returns one meter point with its meters and counts.
func GetMeterPoint(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		d, err := svc.GetMeterPoint(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

// ListMeters returns meters, filterable by mpan and meter_type.
func ListMeters(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagingParams(c)
		if !ok {
			return nil
		}
		q := service.MeterQuery{
			MPAN:      c.Query("mpan"),
			MeterType: c.Query("meter_type"),
		}
		res, err := svc.ListMeters(c.UserContext(), q, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetMeter returns one meter with its MPAN and reading count.
func GetMeter(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		d, err := svc.GetMeter(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

func respondReadings(c *fiber.Ctx, svc service.MeterDataService, q service.ReadingQuery) error {
	limit, offset, ok := pagingParams(c)
	if !ok {
		return nil
	}
	res, err := svc.ListReadings(c.UserContext(), q, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(res)
}

// ListReadings returns readings with their meter, meter point, and
// flow-file context, filterable by all of them plus a date window.
func ListReadings(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, ok := readingQuery(c)
		if !ok {
			return nil
		}
		return respondReadings(c, svc, q)
	}
}

// ListMeterPointReadings returns the readings recorded under one meter
// point. Unknown meter points are a 404, not an empty list.
func ListMeterPointReadings(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		if _, err := svc.GetMeterPoint(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		q, ok := readingQuery(c)
		if !ok {
			return nil
		}
		q.MeterPointID = id
		return respondReadings(c, svc, q)
	}
}

// ListMeterReadings returns the readings recorded by one meter. Unknown
// meters are a 404, not an empty list.
func ListMeterReadings(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		if _, err := svc.GetMeter(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		q, ok := readingQuery(c)
		if !ok {
			return nil
		}
		q.MeterID = id
		return respondReadings(c, svc, q)
	}
}

// ReadingsSummary returns whole-store aggregates.
func ReadingsSummary(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Summary(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// GetReading returns one reading with its full context.
func GetReading(svc service.MeterDataService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return nil
		}
		d, err := svc.GetReading(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}
