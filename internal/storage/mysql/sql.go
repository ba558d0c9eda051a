package mysql

// Both read queries join reservations to properties on the full
// (property_id, tenant_id) pair; property ids are only unique per tenant.

const totalRevenueSQL = `
SELECT
  SUM(r.total_amount) AS total_revenue,
  COUNT(*)            AS reservation_count
FROM reservations r
INNER JOIN properties p
  ON r.property_id = p.id AND r.tenant_id = p.tenant_id
WHERE r.property_id = ? AND r.tenant_id = ?
GROUP BY r.property_id
`

// check_in_date is stored as a naive-UTC DATETIME; CONVERT_TZ reprojects it
// into the property's local timezone before the half-open [start, end)
// comparison, so month bucketing follows property-local wall clocks.
// '+00:00' rather than 'UTC' for the source zone: offsets work without the
// mysql.time_zone tables, named zones (like the property timezones in prod)
// still require them to be loaded.
const monthlyRevenueSQL = `
SELECT SUM(r.total_amount) AS total_revenue
FROM reservations r
INNER JOIN properties p
  ON r.property_id = p.id AND r.tenant_id = p.tenant_id
WHERE r.property_id = ? AND r.tenant_id = ?
  AND CONVERT_TZ(r.check_in_date, '+00:00', p.timezone) >= ?
  AND CONVERT_TZ(r.check_in_date, '+00:00', p.timezone) <  ?
`

const insertPropertySQL = `
INSERT INTO properties (id, tenant_id, name, timezone)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  timezone   = VALUES(timezone),
  updated_at = CURRENT_TIMESTAMP
`

const insertReservationSQL = `
INSERT INTO reservations (property_id, tenant_id, guest_name, check_in_date, total_amount)
VALUES (?, ?, ?, ?, ?)
`
