package commerce

// ════════════════════════════════════════════════════════════
// Fragments
// ════════════════════════════════════════════════════════════

const imageFields = `url altText width height`

const productFragment = `
fragment ProductFields on Product {
  id
  title
  handle
  description
  vendor
  productType
  tags
  createdAt
  availableForSale
  priceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  compareAtPriceRange {
    minVariantPrice { amount currencyCode }
    maxVariantPrice { amount currencyCode }
  }
  options { name values }
  featuredImage { ` + imageFields + ` }
  images(first: 10) { nodes { ` + imageFields + ` } }
  variants(first: 100) {
    nodes {
      id
      title
      availableForSale
      quantityAvailable
      price { amount currencyCode }
      compareAtPrice { amount currencyCode }
      selectedOptions { name value }
      image { ` + imageFields + ` }
    }
  }
  color: metafield(namespace: "custom", key: "color") { value }
  size: metafield(namespace: "custom", key: "size") { value }
  season: metafield(namespace: "custom", key: "season") { value }
  details: metafields(identifiers: [
    { namespace: "custom", key: "material" }
    { namespace: "custom", key: "fit" }
    { namespace: "custom", key: "style" }
  ]) { key value }
}
`

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { amount currencyCode }
    totalAmount { amount currencyCode }
    totalTaxAmount { amount currencyCode }
  }
  lines(first: 100) {
    nodes {
      id
      quantity
      cost { totalAmount { amount currencyCode } }
      merchandise {
        ... on ProductVariant {
          id
          title
          quantityAvailable
          price { amount currencyCode }
          selectedOptions { name value }
          image { ` + imageFields + ` }
          product { handle title }
        }
      }
    }
  }
}
`

const addressFields = `id firstName lastName address1 address2 city province zip country phone`

const customerFields = `
  id
  firstName
  lastName
  email
  phone
  acceptsMarketing
  defaultAddress { ` + addressFields + ` }
`

const cartUserErrors = `userErrors { field message code }`
const customerUserErrors = `customerUserErrors { field message code }`

// ════════════════════════════════════════════════════════════
// Storefront: catalog
// ════════════════════════════════════════════════════════════

const queryProductByHandle = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) { ...ProductFields }
}
` + productFragment

const queryProducts = `
query Products($first: Int!, $after: String) {
  products(first: $first, after: $after, sortKey: CREATED_AT, reverse: true) {
    nodes { ...ProductFields }
    pageInfo { hasNextPage endCursor }
  }
}
` + productFragment

const queryRecommendations = `
query Recommendations($productId: ID!) {
  productRecommendations(productId: $productId) { ...ProductFields }
}
` + productFragment

const queryCollection = `
query CollectionByHandle($handle: String!, $first: Int!, $after: String) {
  collection(handle: $handle) {
    id
    handle
    title
    description
    image { ` + imageFields + ` }
    products(first: $first, after: $after) {
      nodes { ...ProductFields }
      pageInfo { hasNextPage endCursor }
    }
  }
}
` + productFragment

const queryPredictiveSearch = `
query PredictiveSearch($query: String!, $limit: Int!) {
  predictiveSearch(query: $query, limit: $limit, types: [QUERY, PRODUCT, COLLECTION]) {
    queries { text }
    products {
      title
      handle
      priceRange { minVariantPrice { amount currencyCode } }
      featuredImage { ` + imageFields + ` }
    }
    collections { title handle }
  }
}
`

const queryMenu = `
query Menu($handle: String!) {
  menu(handle: $handle) {
    id
    handle
    title
    items {
      title url type
      items {
        title url type
        items { title url type }
      }
    }
  }
}
`

// ════════════════════════════════════════════════════════════
// Storefront: cart
// ════════════════════════════════════════════════════════════

const mutationCartCreate = `
mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart { ...CartFields }
    ` + cartUserErrors + `
  }
}
` + cartFragment

const queryCart = `
query Cart($id: ID!) {
  cart(id: $id) { ...CartFields }
}
` + cartFragment

const mutationCartLinesAdd = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + cartUserErrors + `
  }
}
` + cartFragment

const mutationCartLinesUpdate = `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    ` + cartUserErrors + `
  }
}
` + cartFragment

const mutationCartLinesRemove = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ...CartFields }
    ` + cartUserErrors + `
  }
}
` + cartFragment

const mutationCartBuyerIdentity = `
mutation CartBuyerIdentityUpdate($cartId: ID!, $buyerIdentity: CartBuyerIdentityInput!) {
  cartBuyerIdentityUpdate(cartId: $cartId, buyerIdentity: $buyerIdentity) {
    cart { ...CartFields }
    ` + cartUserErrors + `
  }
}
` + cartFragment

// ════════════════════════════════════════════════════════════
// Storefront: customer
// ════════════════════════════════════════════════════════════

const mutationAccessTokenCreate = `
mutation CustomerAccessTokenCreate($input: CustomerAccessTokenCreateInput!) {
  customerAccessTokenCreate(input: $input) {
    customerAccessToken { accessToken expiresAt }
    ` + customerUserErrors + `
  }
}
`

const mutationAccessTokenDelete = `
mutation CustomerAccessTokenDelete($token: String!) {
  customerAccessTokenDelete(customerAccessToken: $token) {
    deletedAccessToken
    userErrors { field message }
  }
}
`

const queryCustomer = `
query Customer($token: String!) {
  customer(customerAccessToken: $token) {` + customerFields + `}
}
`

const mutationCustomerCreate = `
mutation CustomerCreate($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer {` + customerFields + `}
    ` + customerUserErrors + `
  }
}
`

const queryCustomerOrders = `
query CustomerOrders($token: String!, $first: Int!, $after: String) {
  customer(customerAccessToken: $token) {
    orders(first: $first, after: $after, sortKey: PROCESSED_AT, reverse: true) {
      nodes {
        id
        name
        orderNumber
        processedAt
        financialStatus
        fulfillmentStatus
        totalPrice { amount currencyCode }
        lineItems(first: 50) {
          nodes {
            title
            quantity
            variant { id price { amount currencyCode } }
          }
        }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}
`

const queryCustomerAddresses = `
query CustomerAddresses($token: String!) {
  customer(customerAccessToken: $token) {
    defaultAddress { id }
    addresses(first: 50) { nodes { ` + addressFields + ` } }
  }
}
`

const mutationAddressCreate = `
mutation CustomerAddressCreate($token: String!, $address: MailingAddressInput!) {
  customerAddressCreate(customerAccessToken: $token, address: $address) {
    customerAddress { ` + addressFields + ` }
    ` + customerUserErrors + `
  }
}
`

const mutationAddressUpdate = `
mutation CustomerAddressUpdate($token: String!, $id: ID!, $address: MailingAddressInput!) {
  customerAddressUpdate(customerAccessToken: $token, id: $id, address: $address) {
    customerAddress { ` + addressFields + ` }
    ` + customerUserErrors + `
  }
}
`

const mutationAddressDelete = `
mutation CustomerAddressDelete($token: String!, $id: ID!) {
  customerAddressDelete(customerAccessToken: $token, id: $id) {
    deletedCustomerAddressId
    ` + customerUserErrors + `
  }
}
`

const mutationDefaultAddress = `
mutation CustomerDefaultAddressUpdate($token: String!, $addressId: ID!) {
  customerDefaultAddressUpdate(customerAccessToken: $token, addressId: $addressId) {
    customer { id }
    ` + customerUserErrors + `
  }
}
`

const mutationCustomerRecover = `
mutation CustomerRecover($email: String!) {
  customerRecover(email: $email) {
    ` + customerUserErrors + `
  }
}
`

// ════════════════════════════════════════════════════════════
// Admin
// ════════════════════════════════════════════════════════════

const adminCustomerFields = `
  id
  firstName
  lastName
  email
  phone
  emailMarketingConsent { marketingState }
  defaultAddress { ` + addressFields + ` }
`

const adminQueryCustomerByEmail = `
query CustomerByEmail($query: String!) {
  customers(first: 1, query: $query) {
    nodes {` + adminCustomerFields + `}
  }
}
`

const adminQueryCustomerByID = `
query CustomerByID($id: ID!) {
  customer(id: $id) {` + adminCustomerFields + `}
}
`

const adminMutationCustomerCreate = `
mutation AdminCustomerCreate($input: CustomerInput!) {
  customerCreate(input: $input) {
    customer {` + adminCustomerFields + `}
    userErrors { field message }
  }
}
`

const adminQueryCustomerOrders = `
query AdminCustomerOrders($id: ID!, $first: Int!, $after: String) {
  customer(id: $id) {
    orders(first: $first, after: $after, sortKey: PROCESSED_AT, reverse: true) {
      nodes {
        id
        name
        processedAt
        displayFinancialStatus
        displayFulfillmentStatus
        totalPriceSet { shopMoney { amount currencyCode } }
        lineItems(first: 50) {
          nodes {
            title
            quantity
            variant { id }
            originalUnitPriceSet { shopMoney { amount currencyCode } }
          }
        }
      }
      pageInfo { hasNextPage endCursor }
    }
  }
}
`

const adminMutationOrderCreate = `
mutation PendingOrderCreate($order: OrderCreateOrderInput!, $options: OrderCreateOptionsInput) {
  orderCreate(order: $order, options: $options) {
    order { id name }
    userErrors { field message }
  }
}
`

const adminMutationOrderCancel = `
mutation OrderCancel($orderId: ID!, $restock: Boolean!) {
  orderCancel(orderId: $orderId, reason: CUSTOMER, refund: false, restock: $restock, notifyCustomer: false) {
    job { id }
    orderCancelUserErrors { field message code }
  }
}
`
