package dao

// Foreign keys that gorm cannot express without association fields, and the
// two stored functions the allocator and the random draw depend on.
var schemaStatements = []string{
	// The upper bound on qty is raffle.max_qty, enforced by the order service.
	`ALTER TABLE orders DROP CONSTRAINT IF EXISTS chk_orders_qty`,

	`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_orders_event') THEN
		ALTER TABLE orders ADD CONSTRAINT fk_orders_event
			FOREIGN KEY (event_id) REFERENCES events (id);
	END IF;
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_tickets_order') THEN
		ALTER TABLE tickets ADD CONSTRAINT fk_tickets_order
			FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE;
	END IF;
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_draws_ticket') THEN
		ALTER TABLE draws ADD CONSTRAINT fk_draws_ticket
			FOREIGN KEY (event_id, winning_ticket_number) REFERENCES tickets (event_id, ticket_number);
	END IF;
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_ticket_sequences_event') THEN
		ALTER TABLE ticket_sequences ADD CONSTRAINT fk_ticket_sequences_event
			FOREIGN KEY (event_id) REFERENCES events (id);
	END IF;
END
$$`,

	// Reserves p_qty consecutive numbers and returns the first one. The
	// sequence row stays locked until the calling transaction ends, so
	// allocations for one event are serialized and a rollback leaves no gap.
	`CREATE OR REPLACE FUNCTION get_next_ticket_number(p_event_id uuid, p_qty integer DEFAULT 1)
RETURNS bigint
LANGUAGE plpgsql
AS $$
DECLARE
	v_last bigint;
BEGIN
	IF p_qty IS NULL OR p_qty < 1 THEN
		RAISE EXCEPTION 'quantity must be positive, got %', p_qty
			USING ERRCODE = 'invalid_parameter_value';
	END IF;

	PERFORM 1 FROM events WHERE id = p_event_id;
	IF NOT FOUND THEN
		RAISE EXCEPTION 'event % not found', p_event_id
			USING ERRCODE = 'no_data_found';
	END IF;

	INSERT INTO ticket_sequences AS s (event_id, last_number)
	VALUES (
		p_event_id,
		COALESCE((SELECT MAX(ticket_number) FROM tickets WHERE event_id = p_event_id), 0) + p_qty
	)
	ON CONFLICT (event_id) DO UPDATE SET last_number = s.last_number + p_qty
	RETURNING s.last_number INTO v_last;

	RETURN v_last - p_qty + 1;
END;
$$`,

	// Picks one undrawn ticket uniformly at random and records it as drawn.
	// Returns no row when every ticket of the event has been drawn.
	`CREATE OR REPLACE FUNCTION draw_next_winner(p_event_id uuid, p_method text DEFAULT 'random')
RETURNS SETOF draws
LANGUAGE plpgsql
AS $$
DECLARE
	v_ticket tickets%ROWTYPE;
BEGIN
	PERFORM pg_advisory_xact_lock(hashtextextended('draw:' || p_event_id::text, 0));

	SELECT t.* INTO v_ticket
	FROM tickets t
	WHERE t.event_id = p_event_id
		AND NOT EXISTS (
			SELECT 1 FROM draws d
			WHERE d.event_id = t.event_id AND d.winning_ticket_number = t.ticket_number
		)
	ORDER BY random()
	LIMIT 1;

	IF NOT FOUND THEN
		RETURN;
	END IF;

	RETURN QUERY
	INSERT INTO draws (id, event_id, winning_ticket_number, winning_order_id, method, drawn_at)
	VALUES (gen_random_uuid(), p_event_id, v_ticket.ticket_number, v_ticket.order_id, p_method, now())
	RETURNING *;
END;
$$`,
}
