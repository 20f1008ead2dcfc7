package graph

import "fmt"

const (
	QueryPreviousVisit   = "previous_visit"
	QueryCreateVisit     = "create_visit"
	QueryObserveEntity   = "observe_entity"
	QueryRelatedEntities = "related_entities"
	QueryPing            = "ping"
	QuerySchema          = "schema"
)

// MaxHopsCeiling bounds the variable-length PREV traversal. The hop bound cannot
// be a query parameter in Cypher, so it is formatted into the statement.
const MaxHopsCeiling = 50

const previousVisitCypher = `
MATCH (u:User {uid: $uid})-[:VISIT]->(v:Visit {ip: $ip})-[:OF]->(:Page {requestUri: $uri})
RETURN id(v) AS id
ORDER BY v.requestTime DESC, id(v) DESC
LIMIT 1
`

const createVisitCypher = `
MERGE (u:User {uid: $uid, roles: $roles})
MERGE (p:Page {requestUri: $requestUri, method: $method})
CREATE (u)-[:VISIT]->(v:Visit {ip: $ip, requestTime: $requestTime})-[:OF]->(p)
WITH v
RETURN id(v) AS id
`

// The predecessor is matched optionally so a visit is still created (unlinked)
// if the predecessor vanished between lookup and creation.
const createLinkedVisitCypher = `
MERGE (u:User {uid: $uid, roles: $roles})
MERGE (p:Page {requestUri: $requestUri, method: $method})
CREATE (u)-[:VISIT]->(v:Visit {ip: $ip, requestTime: $requestTime})-[:OF]->(p)
WITH v
OPTIONAL MATCH (pv:Visit) WHERE id(pv) = $previous
FOREACH (_ IN CASE WHEN pv IS NULL THEN [] ELSE [1] END | CREATE (v)-[:PREV]->(pv))
WITH v
RETURN id(v) AS id
`

const observeEntityCypher = `
MERGE (e:Entity {entity_type: $entity_type, bundle: $bundle, entity_id: $entity_id})
WITH e
MATCH (v:Visit) WHERE id(v) = $visit
CREATE (v)-[:SEEN]->(e)
`

const relatedEntitiesCypher = `
MATCH (p:Page)<-[:OF]-(:Visit)-[:SEEN]->(:Entity {entity_type: $entity_type, entity_id: $entity_id})
WITH DISTINCT p
MATCH (p)<-[:OF]-(:Visit)-[prev:PREV*1..%d]-(:Visit)-[:SEEN]->(e:Entity)
WHERE (e.entity_type + '::' + e.bundle) IN $targets
  AND NOT (e.entity_type = $entity_type AND e.entity_id = $entity_id)
RETURN e.entity_type AS entity_type, e.entity_id AS entity_id, avg(size(prev)) AS distance
ORDER BY distance ASC, entity_type ASC, entity_id ASC
LIMIT $limit
`

const pingCypher = `MATCH (n) RETURN n LIMIT 0`

var schemaStatements = []string{
	`CREATE INDEX page_request_uri IF NOT EXISTS FOR (p:Page) ON (p.requestUri)`,
	`CREATE INDEX entity_type_id IF NOT EXISTS FOR (e:Entity) ON (e.entity_type, e.entity_id)`,
	`CREATE INDEX user_uid IF NOT EXISTS FOR (u:User) ON (u.uid)`,
	`CREATE INDEX visit_ip IF NOT EXISTS FOR (v:Visit) ON (v.ip)`,
}

// ClampHops maps a requested hop bound into [1, MaxHopsCeiling]; non-positive
// values select def.
func ClampHops(hops, def int) int {
	if hops <= 0 {
		hops = def
	}
	if hops < 1 {
		hops = 1
	}
	if hops > MaxHopsCeiling {
		hops = MaxHopsCeiling
	}
	return hops
}

func relatedEntitiesStatement(maxHops int) string {
	return fmt.Sprintf(relatedEntitiesCypher, maxHops)
}

// PingQuery is the cheapest statement that still exercises parsing and a read transaction.
func PingQuery() Query {
	return Query{Name: QueryPing, Cypher: pingCypher}
}
