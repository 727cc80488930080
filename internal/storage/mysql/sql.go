package mysql

const upsertPlanSQL = `
INSERT INTO trip_plans
  (id, city, start_date, end_date, travel_days, request, plan, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  city        = VALUES(city),
  start_date  = VALUES(start_date),
  end_date    = VALUES(end_date),
  travel_days = VALUES(travel_days),
  request     = VALUES(request),
  plan        = VALUES(plan)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getPlanSQL = `
SELECT id, request, plan, created_at
FROM trip_plans
WHERE id = ?
`

// Newest first. The cursor is the seq of the last row on the previous page;
// list filters are appended by the repo.
const listPlansPrefix = `
SELECT seq, id, city, start_date, end_date, travel_days, created_at
FROM trip_plans
`

const listPlansSuffix = `
ORDER BY seq DESC
LIMIT ?
`
